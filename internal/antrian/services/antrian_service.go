package services

import (
	"database/sql"
	"errors"
	"fmt"

	"medicare-backend/internal/antrian/models"
)

var (
	ErrAntrianTidakDitemukan = errors.New("antrian tidak ditemukan")
	ErrTransisiTidakValid    = errors.New("transisi status antrian tidak valid")
)

// AntrianService menangani perpindahan status antrian rawat jalan.
// Setiap transisi meng-update entri antrian DAN record Screening yang
// ditautkan dalam satu transaksi; keduanya tidak pernah berubah
// terpisah.
type AntrianService struct {
	DB *sql.DB
}

func NewAntrianService(db *sql.DB) *AntrianService {
	return &AntrianService{DB: db}
}

// PanggilPasien memanggil pasien: antrian -> "called", screening ->
// "in-progress". Memanggil ulang pasien yang sudah "called" diizinkan.
func (s *AntrianService) PanggilPasien(idScreening int64) (map[string]interface{}, error) {
	return s.transisi(idScreening, models.StatusCalled)
}

// MulaiPemeriksaan menandai pasien masuk ruang periksa: antrian dan
// screening sama-sama "in-progress".
func (s *AntrianService) MulaiPemeriksaan(idScreening int64) (map[string]interface{}, error) {
	return s.transisi(idScreening, models.StatusInProgress)
}

func (s *AntrianService) transisi(idScreening int64, target models.StatusAntrian) (map[string]interface{}, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	result, err := s.TransisiInTx(tx, idScreening, target)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// TransisiInTx menjalankan satu transisi status di dalam transaksi
// milik pemanggil. Dipakai juga oleh service pemeriksaan untuk
// menandai antrian "completed" dalam transaksi pembuatan rekam medis.
func (s *AntrianService) TransisiInTx(tx *sql.Tx, idScreening int64, target models.StatusAntrian) (map[string]interface{}, error) {
	var (
		idAntrian    int64
		nomorAntrian int
		status       models.StatusAntrian
		namaPasien   string
	)
	query := `
		SELECT a.id_antrian, a.nomor_antrian, a.status, p.nama
		FROM Antrian a
		JOIN Screening sc ON a.id_screening = sc.id_screening
		JOIN Pasien p ON sc.id_pasien = p.id_pasien
		WHERE a.id_screening = ?
		FOR UPDATE
	`
	err := tx.QueryRow(query, idScreening).Scan(&idAntrian, &nomorAntrian, &status, &namaPasien)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAntrianTidakDitemukan
		}
		return nil, fmt.Errorf("gagal membaca antrian: %v", err)
	}

	if !models.TransisiAntrianValid(status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransisiTidakValid, status, target)
	}

	if _, err := tx.Exec("UPDATE Antrian SET status = ? WHERE id_antrian = ?", target, idAntrian); err != nil {
		return nil, fmt.Errorf("gagal mengupdate antrian: %v", err)
	}
	if _, err := tx.Exec("UPDATE Screening SET status = ? WHERE id_screening = ?",
		models.StatusScreeningUntuk(target), idScreening); err != nil {
		return nil, fmt.Errorf("gagal mengupdate screening: %v", err)
	}

	return map[string]interface{}{
		"id_antrian":    idAntrian,
		"id_screening":  idScreening,
		"nomor_antrian": FormatNomor(nomorAntrian),
		"status":        target,
		"nama_pasien":   namaPasien,
	}, nil
}

// GetAntrianHariIni mengembalikan daftar antrian hari ini dengan
// status tertentu (atau semua jika status kosong), urut nomor.
func (s *AntrianService) GetAntrianHariIni(status string) ([]map[string]interface{}, error) {
	tanggal, err := TanggalHariIni()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id_antrian, a.id_screening, a.nomor_antrian, a.status, p.nama, sc.keluhan
		FROM Antrian a
		JOIN Screening sc ON a.id_screening = sc.id_screening
		JOIN Pasien p ON sc.id_pasien = p.id_pasien
		WHERE DATE(a.created_at) = ?
	`
	params := []interface{}{tanggal}
	if status != "" {
		query += " AND a.status = ?"
		params = append(params, status)
	}
	query += " ORDER BY a.nomor_antrian"

	rows, err := s.DB.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			idAntrian, idScreening int64
			nomor                  int
			st, nama, keluhan      string
		)
		if err := rows.Scan(&idAntrian, &idScreening, &nomor, &st, &nama, &keluhan); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_antrian":    idAntrian,
			"id_screening":  idScreening,
			"nomor_antrian": FormatNomor(nomor),
			"status":        st,
			"nama_pasien":   nama,
			"keluhan":       keluhan,
		})
	}
	return result, rows.Err()
}
