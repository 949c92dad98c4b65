package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	antrianservices "medicare-backend/internal/antrian/services"
	apotekmodels "medicare-backend/internal/apotek/models"
	"medicare-backend/internal/farmasi/models"
)

var (
	ErrAntrianFarmasiTidakDitemukan = errors.New("antrian farmasi tidak ditemukan")
	ErrTransisiFarmasiTidakValid    = errors.New("transisi status farmasi tidak valid")
	ErrNamaApotekerKosong           = errors.New("nama apoteker harus diisi")
	ErrStokObatTidakCukup           = errors.New("stok obat tidak mencukupi untuk resep")
)

// FarmasiService menangani alur penyiapan resep: waiting -> preparing
// -> ready -> dispensed. Timestamp tiap status diisi sekali pada saat
// status itu dimasuki dan tidak pernah ditimpa.
type FarmasiService struct {
	DB *sql.DB
}

func NewFarmasiService(db *sql.DB) *FarmasiService {
	return &FarmasiService{DB: db}
}

// SiapkanResep memulai penyiapan resep oleh apoteker.
func (s *FarmasiService) SiapkanResep(idRM int64, namaApoteker string) (map[string]interface{}, error) {
	if namaApoteker == "" {
		return nil, ErrNamaApotekerKosong
	}
	return s.transisi(idRM, models.FarmasiPreparing,
		"UPDATE Antrian_Farmasi SET status = ?, nama_apoteker = ?, started_at = ? WHERE id = ?",
		func(id int64, now time.Time) []interface{} {
			return []interface{}{models.FarmasiPreparing, namaApoteker, now, id}
		}, nil)
}

// TandaiSiap menandai resep selesai disiapkan dan siap diambil.
func (s *FarmasiService) TandaiSiap(idRM int64) (map[string]interface{}, error) {
	return s.transisi(idRM, models.FarmasiReady,
		"UPDATE Antrian_Farmasi SET status = ?, completed_at = ? WHERE id = ?",
		func(id int64, now time.Time) []interface{} {
			return []interface{}{models.FarmasiReady, now, id}
		}, nil)
}

// SerahkanObat menyerahkan obat ke pasien. Terminal. Stok tiap item
// resep dikurangi dan dicatat sebagai OUT/PRESCRIPTION dalam transaksi
// yang sama.
func (s *FarmasiService) SerahkanObat(idRM int64) (map[string]interface{}, error) {
	return s.transisi(idRM, models.FarmasiDispensed,
		"UPDATE Antrian_Farmasi SET status = ?, dispensed_at = ? WHERE id = ?",
		func(id int64, now time.Time) []interface{} {
			return []interface{}{models.FarmasiDispensed, now, id}
		}, s.kurangiStokResep)
}

func (s *FarmasiService) transisi(idRM int64, target models.StatusFarmasi, updateQuery string, args func(int64, time.Time) []interface{}, setelah func(*sql.Tx, int64) error) (map[string]interface{}, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	var (
		id           int64
		nomorAntrian int
		status       models.StatusFarmasi
		namaPasien   string
	)
	query := `
		SELECT af.id, af.nomor_antrian, af.status, p.nama
		FROM Antrian_Farmasi af
		JOIN Rekam_Medis rm ON af.id_rm = rm.id_rm
		JOIN Pasien p ON rm.id_pasien = p.id_pasien
		WHERE af.id_rm = ?
		FOR UPDATE
	`
	err = tx.QueryRow(query, idRM).Scan(&id, &nomorAntrian, &status, &namaPasien)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrAntrianFarmasiTidakDitemukan
		}
		return nil, fmt.Errorf("gagal membaca antrian farmasi: %v", err)
	}

	if !models.TransisiFarmasiValid(status, target) {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransisiFarmasiTidakValid, status, target)
	}

	if _, err := tx.Exec(updateQuery, args(id, time.Now())...); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("gagal mengupdate antrian farmasi: %v", err)
	}

	if setelah != nil {
		if err := setelah(tx, idRM); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id_rm":         idRM,
		"nomor_antrian": antrianservices.FormatNomor(nomorAntrian),
		"status":        target,
		"nama_pasien":   namaPasien,
	}, nil
}

// kurangiStokResep mengurangi stok tiap item resep dan menulis baris
// pergerakan OUT/PRESCRIPTION. Berjalan di transaksi penyerahan obat.
func (s *FarmasiService) kurangiStokResep(tx *sql.Tx, idRM int64) error {
	rows, err := tx.Query("SELECT id_produk, jumlah FROM Resep_Item WHERE id_rm = ?", idRM)
	if err != nil {
		return fmt.Errorf("gagal membaca item resep: %v", err)
	}
	type item struct {
		idProduk int64
		jumlah   int
	}
	var items []item
	for rows.Next() {
		var it item
		if err := rows.Scan(&it.idProduk, &it.jumlah); err != nil {
			rows.Close()
			return fmt.Errorf("scan error: %v", err)
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	referensi := fmt.Sprintf("RM-%d", idRM)
	now := time.Now()
	for _, it := range items {
		var (
			nama string
			stok int
		)
		err := tx.QueryRow("SELECT nama, stok FROM Produk WHERE id_produk = ? FOR UPDATE", it.idProduk).
			Scan(&nama, &stok)
		if err != nil {
			return fmt.Errorf("gagal membaca stok produk: %v", err)
		}
		if stok < it.jumlah {
			return fmt.Errorf("%w: %s (stok %d, resep %d)", ErrStokObatTidakCukup, nama, stok, it.jumlah)
		}
		if _, err := tx.Exec("UPDATE Produk SET stok = stok - ? WHERE id_produk = ?", it.jumlah, it.idProduk); err != nil {
			return fmt.Errorf("gagal mengupdate stok: %v", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO Pergerakan_Stok (id_produk, tipe, jumlah, alasan, referensi, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.idProduk, apotekmodels.PergerakanKeluar, it.jumlah, apotekmodels.AlasanResep, referensi, now,
		); err != nil {
			return fmt.Errorf("gagal mencatat pergerakan stok: %v", err)
		}
	}
	return nil
}

// GetAntrianFarmasiHariIni mengembalikan antrian farmasi hari ini
// beserta item resepnya, urut nomor antrian.
func (s *FarmasiService) GetAntrianFarmasiHariIni() ([]map[string]interface{}, error) {
	tanggal, err := antrianservices.TanggalHariIni()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT af.id, af.id_rm, af.nomor_antrian, af.status,
		       IFNULL(af.nama_apoteker, ''), p.nama
		FROM Antrian_Farmasi af
		JOIN Rekam_Medis rm ON af.id_rm = rm.id_rm
		JOIN Pasien p ON rm.id_pasien = p.id_pasien
		WHERE DATE(af.created_at) = ?
		ORDER BY af.nomor_antrian
	`
	rows, err := s.DB.Query(query, tanggal)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id, idRM               int64
			nomor                  int
			status, apoteker, nama string
		)
		if err := rows.Scan(&id, &idRM, &nomor, &status, &apoteker, &nama); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id":            id,
			"id_rm":         idRM,
			"nomor_antrian": antrianservices.FormatNomor(nomor),
			"status":        status,
			"nama_apoteker": apoteker,
			"nama_pasien":   nama,
		})
	}
	return result, rows.Err()
}

// GetResepByRM mengembalikan item resep untuk satu rekam medis.
func (s *FarmasiService) GetResepByRM(idRM int64) ([]map[string]interface{}, error) {
	query := `
		SELECT ri.id, pr.nama, ri.jumlah, ri.aturan_pakai, pr.satuan
		FROM Resep_Item ri
		JOIN Produk pr ON ri.id_produk = pr.id_produk
		WHERE ri.id_rm = ?
		ORDER BY ri.id
	`
	rows, err := s.DB.Query(query, idRM)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var (
			id                        int64
			nama, aturanPakai, satuan string
			jumlah                    int
		)
		if err := rows.Scan(&id, &nama, &jumlah, &aturanPakai, &satuan); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id":           id,
			"nama_produk":  nama,
			"jumlah":       jumlah,
			"aturan_pakai": aturanPakai,
			"satuan":       satuan,
		})
	}
	return result, rows.Err()
}
