package mysql

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"medicare-backend/config"
)

var (
	db   *sql.DB
	once sync.Once
)

// Connect membuka koneksi ke database MySQL/MariaDB.
// Kredensial diambil dari file .env melalui config.LoadConfig.
// loc di-set ke zona waktu klinik supaya kolom DATE/DATETIME
// yang di-scan lewat parseTime ikut zona bisnis.
func Connect() *sql.DB {
	once.Do(func() {
		cfg := config.LoadConfig()
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
			url.QueryEscape(cfg.Timezone))

		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("gagal membuka koneksi ke database")
		}

		if err = db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("gagal melakukan ping ke database")
		}

		log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("berhasil terhubung ke database")
	})

	return db
}

// GetDB mengembalikan instance koneksi database yang sudah terbentuk.
func GetDB() *sql.DB {
	return db
}
