package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	antrianmodels "medicare-backend/internal/antrian/models"
	antrianservices "medicare-backend/internal/antrian/services"
	farmasimodels "medicare-backend/internal/farmasi/models"
	"medicare-backend/internal/pemeriksaan/models"
)

var (
	ErrScreeningTidakDitemukan = errors.New("screening tidak ditemukan")
	ErrResepKosong             = errors.New("item resep tidak boleh kosong")
)

// PemeriksaanService menyimpan hasil pemeriksaan dokter. Penyelesaian
// pemeriksaan adalah satu transaksi: rekam medis + item resep +
// antrian screening jadi "completed" + entri antrian farmasi baru.
type PemeriksaanService struct {
	DB      *sql.DB
	Antrian *antrianservices.AntrianService
	Counter *antrianservices.CounterService
}

func NewPemeriksaanService(db *sql.DB, antrian *antrianservices.AntrianService, counter *antrianservices.CounterService) *PemeriksaanService {
	return &PemeriksaanService{DB: db, Antrian: antrian, Counter: counter}
}

// SimpanPemeriksaan menulis hasil pemeriksaan. Jika ada resep, entri
// antrian farmasi dibuat dengan nomor dari counter scope "farmasi";
// status awalnya "waiting".
func (s *PemeriksaanService) SimpanPemeriksaan(req models.PemeriksaanRequest, idKaryawan int64) (map[string]interface{}, error) {
	var idPasien int64
	err := s.DB.QueryRow("SELECT id_pasien FROM Screening WHERE id_screening = ?", req.IDScreening).Scan(&idPasien)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScreeningTidakDitemukan
		}
		return nil, err
	}

	for _, item := range req.Resep {
		if item.IDProduk == 0 || item.Jumlah <= 0 {
			return nil, ErrResepKosong
		}
	}

	tanggal, err := antrianservices.TanggalHariIni()
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	res, err := tx.Exec(`
		INSERT INTO Rekam_Medis (id_screening, id_pasien, id_karyawan, diagnosis, terapi, catatan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.IDScreening, idPasien, idKaryawan, req.Diagnosis, req.Terapi, req.Catatan, time.Now(),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	idRM, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range req.Resep {
		if _, err := tx.Exec(`
			INSERT INTO Resep_Item (id_rm, id_produk, jumlah, aturan_pakai)
			VALUES (?, ?, ?, ?)`,
			idRM, item.IDProduk, item.Jumlah, item.AturanPakai,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Antrian screening selesai; screening ikut "completed".
	antrianResult, err := s.Antrian.TransisiInTx(tx, req.IDScreening, antrianmodels.StatusCompleted)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	result := map[string]interface{}{
		"id_rm":        idRM,
		"id_pasien":    idPasien,
		"nama_pasien":  antrianResult["nama_pasien"],
		"jumlah_resep": len(req.Resep),
	}

	// Resep diserahkan ke farmasi dengan penomoran sendiri.
	if len(req.Resep) > 0 {
		counter, err := s.Counter.AllocateInTx(tx, antrianservices.ScopeFarmasi, tanggal)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := tx.Exec(`
			INSERT INTO Antrian_Farmasi (id_rm, nomor_antrian, status, created_at)
			VALUES (?, ?, ?, ?)`,
			idRM, counter.NomorAntrian, farmasimodels.FarmasiWaiting, time.Now(),
		); err != nil {
			tx.Rollback()
			return nil, err
		}
		result["nomor_antrian_farmasi"] = counter.NomorTerformat
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPemeriksaanHariIni mengembalikan pemeriksaan yang selesai hari
// ini, terbaru lebih dulu.
func (s *PemeriksaanService) GetPemeriksaanHariIni() ([]map[string]interface{}, error) {
	tanggal, err := antrianservices.TanggalHariIni()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT rm.id_rm, p.nama, k.nama, rm.diagnosis,
		       DATE_FORMAT(rm.created_at, '%H:%i'),
		       COUNT(ri.id) AS jumlah_resep
		FROM Rekam_Medis rm
		JOIN Pasien p ON rm.id_pasien = p.id_pasien
		JOIN Karyawan k ON rm.id_karyawan = k.id_karyawan
		LEFT JOIN Resep_Item ri ON rm.id_rm = ri.id_rm
		WHERE DATE(rm.created_at) = ?
		GROUP BY rm.id_rm
		ORDER BY rm.created_at DESC
	`
	rows, err := s.DB.Query(query, tanggal)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			idRM                                   int64
			namaPasien, namaDokter, diagnosis, jam string
			jumlahResep                            int
		)
		if err := rows.Scan(&idRM, &namaPasien, &namaDokter, &diagnosis, &jam, &jumlahResep); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_rm":        idRM,
			"nama_pasien":  namaPasien,
			"nama_dokter":  namaDokter,
			"diagnosis":    diagnosis,
			"jam":          jam,
			"jumlah_resep": jumlahResep,
		})
	}
	return result, rows.Err()
}

// GetRiwayatByPasien mengembalikan riwayat pemeriksaan seorang pasien,
// terbaru lebih dulu.
func (s *PemeriksaanService) GetRiwayatByPasien(idPasien int64) ([]map[string]interface{}, error) {
	query := `
		SELECT rm.id_rm, rm.diagnosis, rm.terapi, rm.catatan,
		       DATE_FORMAT(rm.created_at, '%Y-%m-%d %H:%i'), k.nama,
		       COUNT(ri.id) AS jumlah_resep
		FROM Rekam_Medis rm
		JOIN Karyawan k ON rm.id_karyawan = k.id_karyawan
		LEFT JOIN Resep_Item ri ON rm.id_rm = ri.id_rm
		WHERE rm.id_pasien = ?
		GROUP BY rm.id_rm
		ORDER BY rm.created_at DESC
	`
	rows, err := s.DB.Query(query, idPasien)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			idRM                       int64
			diagnosis, terapi, catatan string
			tanggal, namaDokter        string
			jumlahResep                int
		)
		if err := rows.Scan(&idRM, &diagnosis, &terapi, &catatan, &tanggal, &namaDokter, &jumlahResep); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_rm":        idRM,
			"diagnosis":    diagnosis,
			"terapi":       terapi,
			"catatan":      catatan,
			"tanggal":      tanggal,
			"nama_dokter":  namaDokter,
			"jumlah_resep": jumlahResep,
		})
	}
	return result, rows.Err()
}
