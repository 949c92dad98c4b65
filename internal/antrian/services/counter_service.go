package services

import (
	"database/sql"
	"fmt"
	"time"

	"medicare-backend/config"
	"medicare-backend/internal/antrian/models"
)

// Scope penghitung antrian. Antrian screening dan antrian farmasi
// punya penomoran masing-masing.
const (
	ScopeScreening = "screening"
	ScopeFarmasi   = "farmasi"
)

// CounterService mengelola tabel Antrian_Counter: penghitung nomor
// antrian harian yang append-only.
type CounterService struct {
	DB *sql.DB
}

func NewCounterService(db *sql.DB) *CounterService {
	return &CounterService{DB: db}
}

// TanggalHariIni mengembalikan tanggal bisnis (YYYY-MM-DD) menurut
// zona waktu klinik, bukan zona server. Batas reset nomor antrian
// adalah tengah malam klinik.
func TanggalHariIni() (string, error) {
	loc, err := time.LoadLocation(config.LoadConfig().Timezone)
	if err != nil {
		return "", fmt.Errorf("zona waktu tidak valid: %v", err)
	}
	return time.Now().In(loc).Format("2006-01-02"), nil
}

// FormatNomor memformat nomor antrian menjadi minimal 3 digit
// ("001".."999"). Di atas 999 lebarnya bertambah sendiri ("1000");
// kapasitas harian tidak dibatasi.
func FormatNomor(nomor int) string {
	return fmt.Sprintf("%03d", nomor)
}

// AllocateInTx mengambil nomor antrian berikutnya untuk scope+tanggal
// di dalam transaksi milik pemanggil. SELECT ... FOR UPDATE membuat
// dua request bersamaan terserialisasi di storage, sehingga nomor
// yang sama tidak pernah terbit dua kali; UNIQUE(scope, tanggal,
// nomor_antrian) di schema menjadi jaring pengaman terakhir.
func (s *CounterService) AllocateInTx(tx *sql.Tx, scope, tanggal string) (*models.AntrianCounter, error) {
	var maxNomor sql.NullInt64
	err := tx.QueryRow(
		"SELECT MAX(nomor_antrian) FROM Antrian_Counter WHERE scope = ? AND tanggal = ? FOR UPDATE",
		scope, tanggal,
	).Scan(&maxNomor)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca nomor antrian terakhir: %v", err)
	}

	next := 1
	if maxNomor.Valid {
		next = int(maxNomor.Int64) + 1
	}
	formatted := FormatNomor(next)

	res, err := tx.Exec(
		"INSERT INTO Antrian_Counter (scope, tanggal, nomor_antrian, nomor_terformat, created_at) VALUES (?, ?, ?, ?, ?)",
		scope, tanggal, next, formatted, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan nomor antrian: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.AntrianCounter{
		ID:             id,
		Scope:          scope,
		Tanggal:        tanggal,
		NomorAntrian:   next,
		NomorTerformat: formatted,
	}, nil
}

// Allocate membuka transaksi sendiri lalu memanggil AllocateInTx.
// Dipakai endpoint yang hanya butuh nomor tanpa menulis baris lain.
func (s *CounterService) Allocate(scope string) (*models.AntrianCounter, error) {
	tanggal, err := TanggalHariIni()
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	counter, err := s.AllocateInTx(tx, scope, tanggal)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return counter, nil
}

// GetTodayStats mengembalikan jumlah antrian dan nomor terakhir untuk
// hari ini. Pembacaan murni tanpa lock; angka hanya untuk display,
// read skew saat ada alokasi berjalan tidak masalah.
func (s *CounterService) GetTodayStats(scope string) (map[string]interface{}, error) {
	tanggal, err := TanggalHariIni()
	if err != nil {
		return nil, err
	}

	var total int
	var lastNomor sql.NullInt64
	err = s.DB.QueryRow(
		"SELECT COUNT(*), MAX(nomor_antrian) FROM Antrian_Counter WHERE scope = ? AND tanggal = ?",
		scope, tanggal,
	).Scan(&total, &lastNomor)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca statistik antrian: %v", err)
	}

	stats := map[string]interface{}{
		"tanggal":        tanggal,
		"total_antrian":  total,
		"nomor_terakhir": nil,
	}
	if lastNomor.Valid {
		stats["nomor_terakhir"] = FormatNomor(int(lastNomor.Int64))
	}
	return stats, nil
}
