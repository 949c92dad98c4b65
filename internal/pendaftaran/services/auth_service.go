package services

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"medicare-backend/internal/pendaftaran/models"
)

var ErrKredensialSalah = errors.New("username atau password salah")

type AuthService struct {
	DB *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate memverifikasi kredensial karyawan terhadap hash bcrypt
// di tabel Karyawan.
func (s *AuthService) Authenticate(username, password string) (*models.Karyawan, error) {
	var k models.Karyawan
	err := s.DB.QueryRow(`
		SELECT id_karyawan, nama, username, password, role
		FROM Karyawan WHERE username = ?`, username,
	).Scan(&k.IDKaryawan, &k.Nama, &k.Username, &k.Password, &k.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrKredensialSalah
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(k.Password), []byte(password)); err != nil {
		return nil, ErrKredensialSalah
	}
	return &k, nil
}
