package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medicare-backend/internal/apotek/models"
)

var (
	ErrItemKosong               = errors.New("item penjualan tidak boleh kosong")
	ErrPembayaranKurang         = errors.New("pembayaran kurang dari total transaksi")
	ErrStokTidakCukup           = errors.New("stok produk tidak mencukupi")
	ErrProdukTidakDitemukan     = errors.New("produk tidak ditemukan")
	ErrTransaksiTidakDitemukan  = errors.New("transaksi tidak ditemukan")
	ErrTransaksiSudahDibatalkan = errors.New("transaksi sudah dibatalkan")
)

// Batas waktu transaksi penjualan; lock stok tidak boleh tertahan
// tanpa batas kalau storage lambat.
const penjualanTimeout = 15 * time.Second

// PenjualanService mencatat penjualan obat bebas dan pembatalannya.
// Satu penjualan adalah satu transaksi database: header + item,
// pengurangan stok, pergerakan stok, dan catatan keuangan tertulis
// semua atau tidak sama sekali.
type PenjualanService struct {
	DB *sql.DB
}

func NewPenjualanService(db *sql.DB) *PenjualanService {
	return &PenjualanService{DB: db}
}

// RecordSale mencatat penjualan. Stok dicek di dalam transaksi dengan
// lock baris produk; penjualan yang membuat stok negatif ditolak.
func (s *PenjualanService) RecordSale(req models.PenjualanRequest) (map[string]interface{}, error) {
	if len(req.Items) == 0 {
		return nil, ErrItemKosong
	}
	for _, item := range req.Items {
		if item.IDProduk == 0 || item.Jumlah <= 0 {
			return nil, ErrItemKosong
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), penjualanTimeout)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	type baris struct {
		idProduk int64
		nama     string
		jumlah   int
		harga    float64
		subtotal float64
	}

	var total float64
	barisItems := make([]baris, 0, len(req.Items))
	for _, item := range req.Items {
		var (
			nama  string
			harga float64
			stok  int
		)
		err := tx.QueryRowContext(ctx,
			"SELECT nama, harga, stok FROM Produk WHERE id_produk = ? FOR UPDATE",
			item.IDProduk,
		).Scan(&nama, &harga, &stok)
		if err != nil {
			tx.Rollback()
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: id %d", ErrProdukTidakDitemukan, item.IDProduk)
			}
			return nil, err
		}
		if stok < item.Jumlah {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %s (stok %d, diminta %d)", ErrStokTidakCukup, nama, stok, item.Jumlah)
		}
		subtotal := harga * float64(item.Jumlah)
		total += subtotal
		barisItems = append(barisItems, baris{item.IDProduk, nama, item.Jumlah, harga, subtotal})
	}

	if req.Dibayar < total {
		tx.Rollback()
		return nil, fmt.Errorf("%w: total %.0f, dibayar %.0f", ErrPembayaranKurang, total, req.Dibayar)
	}

	kode := "TRX-" + uuid.NewString()
	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Transaksi (kode, total, dibayar, kembalian, status, catatan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		kode, total, req.Dibayar, req.Dibayar-total, models.TransaksiCompleted, req.Catatan, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	idTransaksi, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, b := range barisItems {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO Transaksi_Item (id_transaksi, id_produk, jumlah, harga_satuan, subtotal)
			VALUES (?, ?, ?, ?, ?)`,
			idTransaksi, b.idProduk, b.jumlah, b.harga, b.subtotal,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE Produk SET stok = stok - ? WHERE id_produk = ?",
			b.jumlah, b.idProduk,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO Pergerakan_Stok (id_produk, tipe, jumlah, alasan, referensi, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.idProduk, models.PergerakanKeluar, b.jumlah, models.AlasanSale, kode, now,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO Catatan_Keuangan (tipe, kategori, jumlah, keterangan, referensi, created_at)
		VALUES ('INCOME', 'SALES', ?, ?, ?, ?)`,
		total, "Penjualan "+kode, kode, now,
	); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id_transaksi": idTransaksi,
		"kode":         kode,
		"total":        total,
		"dibayar":      req.Dibayar,
		"kembalian":    req.Dibayar - total,
		"status":       models.TransaksiCompleted,
	}, nil
}

// CancelSale membatalkan penjualan: status jadi CANCELLED, stok tiap
// item dikembalikan, pergerakan IN/CANCELLED_SALE dan catatan
// EXPENSE/CANCELLED_SALE ditambahkan. Baris SALE asli tidak disentuh;
// log pergerakan dan keuangan append-only.
func (s *PenjualanService) CancelSale(idTransaksi int64) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), penjualanTimeout)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	var (
		kode   string
		total  float64
		status string
	)
	err = tx.QueryRowContext(ctx,
		"SELECT kode, total, status FROM Transaksi WHERE id_transaksi = ? FOR UPDATE",
		idTransaksi,
	).Scan(&kode, &total, &status)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrTransaksiTidakDitemukan
		}
		return nil, err
	}
	if status == models.TransaksiCancelled {
		tx.Rollback()
		return nil, ErrTransaksiSudahDibatalkan
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE Transaksi SET status = ? WHERE id_transaksi = ?",
		models.TransaksiCancelled, idTransaksi,
	); err != nil {
		tx.Rollback()
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id_produk, jumlah FROM Transaksi_Item WHERE id_transaksi = ?", idTransaksi)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	type baris struct {
		idProduk int64
		jumlah   int
	}
	var items []baris
	for rows.Next() {
		var b baris
		if err := rows.Scan(&b.idProduk, &b.jumlah); err != nil {
			rows.Close()
			tx.Rollback()
			return nil, err
		}
		items = append(items, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	for _, b := range items {
		if _, err := tx.ExecContext(ctx,
			"UPDATE Produk SET stok = stok + ? WHERE id_produk = ?",
			b.jumlah, b.idProduk,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO Pergerakan_Stok (id_produk, tipe, jumlah, alasan, referensi, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.idProduk, models.PergerakanMasuk, b.jumlah, models.AlasanCancelledSale, kode, now,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO Catatan_Keuangan (tipe, kategori, jumlah, keterangan, referensi, created_at)
		VALUES ('EXPENSE', 'CANCELLED_SALE', ?, ?, ?, ?)`,
		total, "Pembatalan penjualan "+kode, kode, now,
	); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id_transaksi": idTransaksi,
		"kode":         kode,
		"total":        total,
		"status":       models.TransaksiCancelled,
	}, nil
}

// ListTransaksi mengembalikan daftar transaksi, terbaru lebih dulu.
func (s *PenjualanService) ListTransaksi(status string) ([]map[string]interface{}, error) {
	query := `
		SELECT id_transaksi, kode, total, dibayar, kembalian, status,
		       IFNULL(catatan, ''), DATE_FORMAT(created_at, '%Y-%m-%d %H:%i')
		FROM Transaksi
	`
	params := []interface{}{}
	if status != "" {
		query += " WHERE status = ?"
		params = append(params, status)
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
			id                         int64
			kode, st, catatan, tanggal string
			total, dibayar, kembalian  float64
		)
		if err := rows.Scan(&id, &kode, &total, &dibayar, &kembalian, &st, &catatan, &tanggal); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}
		result = append(result, map[string]interface{}{
			"id_transaksi": id,
			"kode":         kode,
			"total":        total,
			"dibayar":      dibayar,
			"kembalian":    kembalian,
			"status":       st,
			"catatan":      catatan,
			"tanggal":      tanggal,
		})
	}
	return result, rows.Err()
}
