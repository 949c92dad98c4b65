package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medicare-backend/internal/apotek/models"
)

var (
	ErrTipePergerakanTidakValid = errors.New("tipe pergerakan harus IN atau OUT")
	ErrJumlahTidakValid         = errors.New("jumlah pergerakan harus lebih dari 0")
)

// InventoriService mencatat pergerakan stok manual (pembelian dari
// pemasok, penyesuaian stok opname, pengeluaran non-penjualan).
type InventoriService struct {
	DB *sql.DB
}

func NewInventoriService(db *sql.DB) *InventoriService {
	return &InventoriService{DB: db}
}

// CatatPergerakan menulis satu pergerakan stok dalam satu transaksi:
// update stok produk + baris Pergerakan_Stok, plus catatan keuangan
// EXPENSE/PURCHASE jika pembelian dengan total biaya.
func (s *InventoriService) CatatPergerakan(req models.PergerakanRequest) (map[string]interface{}, error) {
	if req.Tipe != models.PergerakanMasuk && req.Tipe != models.PergerakanKeluar {
		return nil, ErrTipePergerakanTidakValid
	}
	if req.Jumlah <= 0 {
		return nil, ErrJumlahTidakValid
	}
	if req.Alasan == "" {
		req.Alasan = models.AlasanAdjustment
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	var (
		nama string
		stok int
	)
	err = tx.QueryRow("SELECT nama, stok FROM Produk WHERE id_produk = ? FOR UPDATE", req.IDProduk).
		Scan(&nama, &stok)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", ErrProdukTidakDitemukan, req.IDProduk)
		}
		return nil, err
	}

	stokBaru := stok + req.Jumlah
	if req.Tipe == models.PergerakanKeluar {
		if stok < req.Jumlah {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %s (stok %d, diminta %d)", ErrStokTidakCukup, nama, stok, req.Jumlah)
		}
		stokBaru = stok - req.Jumlah
	}

	if _, err := tx.Exec("UPDATE Produk SET stok = ? WHERE id_produk = ?", stokBaru, req.IDProduk); err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if _, err := tx.Exec(`
		INSERT INTO Pergerakan_Stok (id_produk, tipe, jumlah, alasan, referensi, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.IDProduk, req.Tipe, req.Jumlah, req.Alasan, req.Keterangan, now,
	); err != nil {
		tx.Rollback()
		return nil, err
	}

	if req.Alasan == models.AlasanPurchase && req.TotalBiaya > 0 {
		if _, err := tx.Exec(`
			INSERT INTO Catatan_Keuangan (tipe, kategori, jumlah, keterangan, referensi, created_at)
			VALUES ('EXPENSE', 'PURCHASE', ?, ?, ?, ?)`,
			req.TotalBiaya, "Pembelian "+nama, req.Keterangan, now,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id_produk":  req.IDProduk,
		"nama":       nama,
		"tipe":       req.Tipe,
		"jumlah":     req.Jumlah,
		"alasan":     req.Alasan,
		"stok_akhir": stokBaru,
	}, nil
}

// GetRiwayatPergerakan mengembalikan log pergerakan stok sebuah
// produk, terbaru lebih dulu.
func (s *InventoriService) GetRiwayatPergerakan(idProduk int64) ([]map[string]interface{}, error) {
	query := `
		SELECT ps.id, ps.tipe, ps.jumlah, ps.alasan, IFNULL(ps.referensi, ''),
		       DATE_FORMAT(ps.created_at, '%Y-%m-%d %H:%i')
		FROM Pergerakan_Stok ps
		WHERE ps.id_produk = ?
		ORDER BY ps.created_at DESC
	`
	rows, err := s.DB.Query(query, idProduk)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id                               int64
			tipe, alasan, referensi, tanggal string
			jumlah                           int
		)
		if err := rows.Scan(&id, &tipe, &jumlah, &alasan, &referensi, &tanggal); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id":        id,
			"tipe":      tipe,
			"jumlah":    jumlah,
			"alasan":    alasan,
			"referensi": referensi,
			"tanggal":   tanggal,
		})
	}
	return result, rows.Err()
}

// GetStokMenipis mengembalikan produk dengan stok di bawah atau sama
// dengan stok minimumnya.
func (s *InventoriService) GetStokMenipis() ([]map[string]interface{}, error) {
	query := `
		SELECT id_produk, nama, kategori, satuan, stok, stok_minimum
		FROM Produk
		WHERE stok <= stok_minimum
		ORDER BY stok ASC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id                     int64
			nama, kategori, satuan string
			stok, stokMin          int
		)
		if err := rows.Scan(&id, &nama, &kategori, &satuan, &stok, &stokMin); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_produk":    id,
			"nama":         nama,
			"kategori":     kategori,
			"satuan":       satuan,
			"stok":         stok,
			"stok_minimum": stokMin,
		})
	}
	return result, rows.Err()
}
