package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	antrianmodels "medicare-backend/internal/antrian/models"
	antrianservices "medicare-backend/internal/antrian/services"
	"medicare-backend/internal/pendaftaran/models"
)

var (
	ErrNIKSudahTerdaftar    = errors.New("NIK sudah terdaftar")
	ErrPasienTidakDitemukan = errors.New("pasien tidak ditemukan")
)

type PendaftaranService struct {
	DB      *sql.DB
	Counter *antrianservices.CounterService
}

func NewPendaftaranService(db *sql.DB, counter *antrianservices.CounterService) *PendaftaranService {
	return &PendaftaranService{DB: db, Counter: counter}
}

// RegisterPasien mendaftarkan pasien baru. NIK unik; duplikat
// dikembalikan sebagai ErrNIKSudahTerdaftar supaya controller bisa
// memberi pesan per-field. Pengecekan awal hanya jalur cepat; dua
// pendaftaran bersamaan dengan NIK sama diadu di UNIQUE constraint,
// dan yang kalah tetap dipetakan ke error yang sama.
func (s *PendaftaranService) RegisterPasien(p models.Pasien) (int64, string, error) {
	var existingID int64
	err := s.DB.QueryRow("SELECT id_pasien FROM Pasien WHERE nik = ?", p.NIK).Scan(&existingID)
	if err == nil {
		return 0, "", ErrNIKSudahTerdaftar
	} else if err != sql.ErrNoRows {
		return 0, "", err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, "", err
	}

	res, err := tx.Exec(`
		INSERT INTO Pasien (nama, nik, jenis_kelamin, tanggal_lahir, alamat, no_telp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Nama, p.NIK, p.JenisKelamin, p.TanggalLahir, p.Alamat, p.NoTelp, time.Now(),
	)
	if err != nil {
		tx.Rollback()
		if isDuplicateEntry(err) {
			return 0, "", ErrNIKSudahTerdaftar
		}
		return 0, "", err
	}
	idPasien, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, "", err
	}

	// Nomor rekam medis diturunkan dari id supaya urut dan unik.
	noRM := fmt.Sprintf("RM-%06d", idPasien)
	if _, err := tx.Exec("UPDATE Pasien SET no_rm = ? WHERE id_pasien = ?", noRM, idPasien); err != nil {
		tx.Rollback()
		return 0, "", err
	}

	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return idPasien, noRM, nil
}

// Error 1062: duplicate entry pada UNIQUE key.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// RegisterKunjungan mendaftarkan kunjungan rawat jalan: dalam satu
// transaksi membuat record Screening berstatus "waiting", mengambil
// nomor antrian dari counter (scope screening), dan membuat entri
// antrian. Gagal di langkah mana pun berarti tidak ada baris yang
// tertinggal.
func (s *PendaftaranService) RegisterKunjungan(req models.KunjunganRequest) (map[string]interface{}, error) {
	var namaPasien string
	err := s.DB.QueryRow("SELECT nama FROM Pasien WHERE id_pasien = ?", req.IDPasien).Scan(&namaPasien)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPasienTidakDitemukan
		}
		return nil, err
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
		INSERT INTO Screening (id_pasien, keluhan, status, created_at)
		VALUES (?, ?, ?, ?)`,
		req.IDPasien, req.Keluhan, antrianmodels.ScreeningWaiting, time.Now(),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	idScreening, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	counter, err := s.Counter.AllocateInTx(tx, antrianservices.ScopeScreening, tanggal)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if _, err := tx.Exec(`
		INSERT INTO Antrian (id_screening, nomor_antrian, status, created_at)
		VALUES (?, ?, ?, ?)`,
		idScreening, counter.NomorAntrian, antrianmodels.StatusWaiting, time.Now(),
	); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id_screening":  idScreening,
		"id_pasien":     req.IDPasien,
		"nama_pasien":   namaPasien,
		"nomor_antrian": counter.NomorTerformat,
		"tanggal":       counter.Tanggal,
		"status":        antrianmodels.StatusWaiting,
	}, nil
}

// ListPasien mengembalikan daftar pasien, opsional dicari berdasarkan
// nama atau NIK.
func (s *PendaftaranService) ListPasien(q string) ([]map[string]interface{}, error) {
	query := `
		SELECT id_pasien, no_rm, nama, nik, jenis_kelamin,
		       DATE_FORMAT(tanggal_lahir, '%Y-%m-%d'), alamat, no_telp
		FROM Pasien
	`
	params := []interface{}{}
	if q != "" {
		query += " WHERE nama LIKE ? OR nik LIKE ?"
		like := "%" + q + "%"
		params = append(params, like, like)
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
			idPasien                                int64
			noRM                                    sql.NullString
			nama, nik, jk, tglLahir, alamat, noTelp string
		)
		if err := rows.Scan(&idPasien, &noRM, &nama, &nik, &jk, &tglLahir, &alamat, &noTelp); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_pasien":     idPasien,
			"no_rm":         noRM.String,
			"nama":          nama,
			"nik":           nik,
			"jenis_kelamin": jk,
			"tanggal_lahir": tglLahir,
			"alamat":        alamat,
			"no_telp":       noTelp,
		})
	}
	return result, rows.Err()
}
