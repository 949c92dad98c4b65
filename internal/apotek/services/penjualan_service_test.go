package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicare-backend/internal/apotek/models"
)

func newPenjualanTestDB(t *testing.T) (sqlmock.Sqlmock, *PenjualanService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewPenjualanService(db)
}

// Penjualan 3 unit produk (stok 10, harga 1000): satu transaksi berisi
// header + item, stok berkurang, satu pergerakan OUT/SALE, dan satu
// catatan INCOME/SALES sebesar 3000.
func TestRecordSale(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT nama, harga, stok FROM Produk WHERE id_produk = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "harga", "stok"}).
			AddRow("Paracetamol 500mg", 1000.0, 10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Transaksi (kode, total, dibayar, kembalian, status, catatan, created_at)")).
		WithArgs(sqlmock.AnyArg(), 3000.0, 5000.0, 2000.0, models.TransaksiCompleted, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Transaksi_Item")).
		WithArgs(int64(100), int64(1), 3, 1000.0, 3000.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Produk SET stok = stok - ? WHERE id_produk = ?")).
		WithArgs(3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Pergerakan_Stok")).
		WithArgs(int64(1), models.PergerakanKeluar, 3, models.AlasanSale, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Catatan_Keuangan")).
		WithArgs(3000.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := svc.RecordSale(models.PenjualanRequest{
		Items:   []models.TransaksiItem{{IDProduk: 1, Jumlah: 3}},
		Dibayar: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, result["total"])
	assert.Equal(t, 2000.0, result["kembalian"])
	assert.Equal(t, models.TransaksiCompleted, result["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Pembayaran kurang dari total: transaksi di-rollback, tidak ada
// baris yang tertulis.
func TestRecordSale_PembayaranKurang(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nama, harga, stok FROM Produk")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "harga", "stok"}).
			AddRow("Paracetamol 500mg", 1000.0, 10))
	mock.ExpectRollback()

	_, err := svc.RecordSale(models.PenjualanRequest{
		Items:   []models.TransaksiItem{{IDProduk: 1, Jumlah: 3}},
		Dibayar: 2500,
	})
	assert.ErrorIs(t, err, ErrPembayaranKurang)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Stok dicek di dalam transaksi; penjualan yang membuat stok negatif
// ditolak sebelum ada baris yang tertulis.
func TestRecordSale_StokTidakCukup(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nama, harga, stok FROM Produk")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "harga", "stok"}).
			AddRow("Paracetamol 500mg", 1000.0, 2))
	mock.ExpectRollback()

	_, err := svc.RecordSale(models.PenjualanRequest{
		Items:   []models.TransaksiItem{{IDProduk: 1, Jumlah: 3}},
		Dibayar: 5000,
	})
	assert.ErrorIs(t, err, ErrStokTidakCukup)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_ItemKosong(t *testing.T) {
	_, svc := newPenjualanTestDB(t)

	_, err := svc.RecordSale(models.PenjualanRequest{Dibayar: 5000})
	assert.ErrorIs(t, err, ErrItemKosong)
}

// Pembatalan mengembalikan stok dan menambahkan baris pembalik
// (IN/CANCELLED_SALE dan EXPENSE/CANCELLED_SALE); baris penjualan
// asli tidak disentuh.
func TestCancelSale(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT kode, total, status FROM Transaksi WHERE id_transaksi = ? FOR UPDATE")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"kode", "total", "status"}).
			AddRow("TRX-abc", 3000.0, models.TransaksiCompleted))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Transaksi SET status = ? WHERE id_transaksi = ?")).
		WithArgs(models.TransaksiCancelled, int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id_produk, jumlah FROM Transaksi_Item WHERE id_transaksi = ?")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id_produk", "jumlah"}).AddRow(1, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Produk SET stok = stok + ? WHERE id_produk = ?")).
		WithArgs(3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Pergerakan_Stok")).
		WithArgs(int64(1), models.PergerakanMasuk, 3, models.AlasanCancelledSale, "TRX-abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Catatan_Keuangan")).
		WithArgs(3000.0, sqlmock.AnyArg(), "TRX-abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	result, err := svc.CancelSale(100)
	require.NoError(t, err)
	assert.Equal(t, models.TransaksiCancelled, result["status"])
	assert.Equal(t, 3000.0, result["total"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSale_TidakDitemukan(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT kode, total, status FROM Transaksi")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"kode", "total", "status"}))
	mock.ExpectRollback()

	_, err := svc.CancelSale(99)
	assert.ErrorIs(t, err, ErrTransaksiTidakDitemukan)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSale_SudahDibatalkan(t *testing.T) {
	mock, svc := newPenjualanTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT kode, total, status FROM Transaksi")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"kode", "total", "status"}).
			AddRow("TRX-abc", 3000.0, models.TransaksiCancelled))
	mock.ExpectRollback()

	_, err := svc.CancelSale(100)
	assert.ErrorIs(t, err, ErrTransaksiSudahDibatalkan)

	assert.NoError(t, mock.ExpectationsWereMet())
}
