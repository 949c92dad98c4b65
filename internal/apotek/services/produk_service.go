package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"medicare-backend/internal/apotek/models"
)

type ProdukService struct {
	DB *sql.DB
}

func NewProdukService(db *sql.DB) *ProdukService {
	return &ProdukService{DB: db}
}

// CreateProduk menambahkan produk baru ke gudang obat.
func (s *ProdukService) CreateProduk(p models.Produk) (int64, error) {
	res, err := s.DB.Exec(`
		INSERT INTO Produk (nama, kategori, satuan, harga, stok, stok_minimum, id_pemasok, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Nama, p.Kategori, p.Satuan, p.Harga, p.Stok, p.StokMinimum, nullableID(p.IDPemasok), time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProduk mengubah data produk. Stok tidak diubah lewat endpoint
// ini; perubahan stok selalu lewat pergerakan supaya log lengkap.
func (s *ProdukService) UpdateProduk(idProduk int64, p models.Produk) error {
	res, err := s.DB.Exec(`
		UPDATE Produk SET nama = ?, kategori = ?, satuan = ?, harga = ?, stok_minimum = ?, id_pemasok = ?
		WHERE id_produk = ?`,
		p.Nama, p.Kategori, p.Satuan, p.Harga, p.StokMinimum, nullableID(p.IDPemasok), idProduk,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrProdukTidakDitemukan, idProduk)
	}
	return nil
}

// ListProduk mengembalikan daftar produk dengan pencarian nama +
// pagination. limit default 20, max 100; page mulai dari 1.
func (s *ProdukService) ListProduk(q string, limit, page int) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT p.id_produk, p.nama, p.kategori, p.satuan, p.harga, p.stok, p.stok_minimum,
		       IFNULL(pm.nama, '')
		FROM Produk p
		LEFT JOIN Pemasok pm ON p.id_pemasok = pm.id_pemasok
	`
	params := []interface{}{}
	if q != "" {
		query += " WHERE LOWER(p.nama) LIKE ?"
		params = append(params, "%"+strings.ToLower(q)+"%")
	}
	query += " ORDER BY p.id_produk LIMIT ? OFFSET ?"
	params = append(params, limit, offset)

	rows, err := s.DB.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id                                  int64
			nama, kategori, satuan, namaPemasok string
			harga                               float64
			stok, stokMin                       int
		)
		if err := rows.Scan(&id, &nama, &kategori, &satuan, &harga, &stok, &stokMin, &namaPemasok); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_produk":    id,
			"nama":         nama,
			"kategori":     kategori,
			"satuan":       satuan,
			"harga":        harga,
			"stok":         stok,
			"stok_minimum": stokMin,
			"nama_pemasok": namaPemasok,
		})
	}
	return result, rows.Err()
}

// CreatePemasok menambahkan pemasok baru.
func (s *ProdukService) CreatePemasok(p models.Pemasok) (int64, error) {
	res, err := s.DB.Exec(
		"INSERT INTO Pemasok (nama, telepon, alamat) VALUES (?, ?, ?)",
		p.Nama, p.Telepon, p.Alamat,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPemasok mengembalikan semua pemasok.
func (s *ProdukService) ListPemasok() ([]models.Pemasok, error) {
	rows, err := s.DB.Query("SELECT id_pemasok, nama, IFNULL(telepon, ''), IFNULL(alamat, '') FROM Pemasok ORDER BY nama")
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []models.Pemasok
	for rows.Next() {
		var p models.Pemasok
		if err := rows.Scan(&p.IDPemasok, &p.Nama, &p.Telepon, &p.Alamat); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
