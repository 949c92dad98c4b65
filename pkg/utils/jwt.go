package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"medicare-backend/config"
)

// Claims untuk token staf klinik. Role menentukan grup endpoint
// yang boleh diakses (admin, dokter, apoteker, perawat).
type Claims struct {
	IDKaryawan int    `json:"id_karyawan"`
	Nama       string `json:"nama"`
	Role       string `json:"role"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWTToken membuat token JWT dengan masa berlaku sesuai parameter exp.
func GenerateJWTToken(idKaryawan int, nama, role, username string, exp time.Time) (string, error) {
	jwtKey := []byte(config.LoadConfig().JWTSecret)
	if len(jwtKey) == 0 {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	claims := Claims{
		IDKaryawan: idKaryawan,
		Nama:       nama,
		Role:       role,
		Username:   username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateJWTToken memvalidasi token JWT dan mengembalikan klaimnya.
func ValidateJWTToken(tokenString string) (*Claims, error) {
	jwtKey := []byte(config.LoadConfig().JWTSecret)
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
