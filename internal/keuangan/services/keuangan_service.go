package services

import (
	"database/sql"
	"fmt"

	antrianservices "medicare-backend/internal/antrian/services"
)

// KeuanganService membaca tabel Catatan_Keuangan. Tabel ini hanya
// ditulis oleh transaksi penjualan, pembatalan, dan pembelian stok;
// di sini murni pelaporan.
type KeuanganService struct {
	DB *sql.DB
}

func NewKeuanganService(db *sql.DB) *KeuanganService {
	return &KeuanganService{DB: db}
}

// ListCatatan mengembalikan catatan keuangan, opsional difilter tipe
// (INCOME/EXPENSE), kategori, dan rentang tanggal (YYYY-MM-DD).
func (s *KeuanganService) ListCatatan(tipe, kategori, dari, sampai string) ([]map[string]interface{}, error) {
	query := `
		SELECT id, tipe, kategori, jumlah, keterangan, IFNULL(referensi, ''),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i')
		FROM Catatan_Keuangan
		WHERE 1=1
	`
	params := []interface{}{}
	if tipe != "" {
		query += " AND tipe = ?"
		params = append(params, tipe)
	}
	if kategori != "" {
		query += " AND kategori = ?"
		params = append(params, kategori)
	}
	if dari != "" {
		query += " AND DATE(created_at) >= ?"
		params = append(params, dari)
	}
	if sampai != "" {
		query += " AND DATE(created_at) <= ?"
		params = append(params, sampai)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id                                     int64
			t, kat, keterangan, referensi, tanggal string
			jumlah                                 float64
		)
		if err := rows.Scan(&id, &t, &kat, &jumlah, &keterangan, &referensi, &tanggal); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id":         id,
			"tipe":       t,
			"kategori":   kat,
			"jumlah":     jumlah,
			"keterangan": keterangan,
			"referensi":  referensi,
			"tanggal":    tanggal,
		})
	}
	return result, rows.Err()
}

// GetRingkasanHarian menghitung pemasukan, pengeluaran, dan selisih
// untuk satu tanggal; default hari ini (zona waktu klinik).
func (s *KeuanganService) GetRingkasanHarian(tanggal string) (map[string]interface{}, error) {
	if tanggal == "" {
		var err error
		tanggal, err = antrianservices.TanggalHariIni()
		if err != nil {
			return nil, err
		}
	}

	var pemasukan, pengeluaran float64
	err := s.DB.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN tipe = 'INCOME' THEN jumlah ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tipe = 'EXPENSE' THEN jumlah ELSE 0 END), 0)
		FROM Catatan_Keuangan
		WHERE DATE(created_at) = ?`, tanggal,
	).Scan(&pemasukan, &pengeluaran)
	if err != nil {
		return nil, fmt.Errorf("gagal menghitung ringkasan: %v", err)
	}

	return map[string]interface{}{
		"tanggal":     tanggal,
		"pemasukan":   pemasukan,
		"pengeluaran": pengeluaran,
		"selisih":     pemasukan - pengeluaran,
	}, nil
}
