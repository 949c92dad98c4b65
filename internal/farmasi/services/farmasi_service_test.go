package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicare-backend/internal/farmasi/models"
)

func newFarmasiTestDB(t *testing.T) (sqlmock.Sqlmock, *FarmasiService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewFarmasiService(db)
}

const selectFarmasiQuery = "SELECT af.id, af.nomor_antrian, af.status, p.nama"

func expectLookup(mock sqlmock.Sqlmock, idRM int64, status string) {
	mock.ExpectQuery(regexp.QuoteMeta(selectFarmasiQuery)).
		WithArgs(idRM).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nomor_antrian", "status", "nama"}).
			AddRow(7, 12, status, "Siti Aminah"))
}

// Skenario lengkap: waiting -> preparing -> ready -> dispensed.
// Tiap langkah mengisi timestamp status yang baru dimasuki.
func TestAlurPenyiapanResep(t *testing.T) {
	mock, svc := newFarmasiTestDB(t)

	// SiapkanResep
	mock.ExpectBegin()
	expectLookup(mock, 42, "waiting")
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE Antrian_Farmasi SET status = ?, nama_apoteker = ?, started_at = ? WHERE id = ?")).
		WithArgs(models.FarmasiPreparing, "Ani", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.SiapkanResep(42, "Ani")
	require.NoError(t, err)
	assert.Equal(t, models.FarmasiPreparing, result["status"])
	assert.Equal(t, "012", result["nomor_antrian"])
	assert.Equal(t, "Siti Aminah", result["nama_pasien"])

	// TandaiSiap
	mock.ExpectBegin()
	expectLookup(mock, 42, "preparing")
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE Antrian_Farmasi SET status = ?, completed_at = ? WHERE id = ?")).
		WithArgs(models.FarmasiReady, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err = svc.TandaiSiap(42)
	require.NoError(t, err)
	assert.Equal(t, models.FarmasiReady, result["status"])

	// SerahkanObat: status terminal plus pengurangan stok item resep.
	mock.ExpectBegin()
	expectLookup(mock, 42, "ready")
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE Antrian_Farmasi SET status = ?, dispensed_at = ? WHERE id = ?")).
		WithArgs(models.FarmasiDispensed, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_produk, jumlah FROM Resep_Item WHERE id_rm = ?")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id_produk", "jumlah"}).AddRow(1, 10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nama, stok FROM Produk WHERE id_produk = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "stok"}).AddRow("Paracetamol 500mg", 30))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Produk SET stok = stok - ? WHERE id_produk = ?")).
		WithArgs(10, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Pergerakan_Stok")).
		WithArgs(int64(1), "OUT", 10, "PRESCRIPTION", "RM-42", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err = svc.SerahkanObat(42)
	require.NoError(t, err)
	assert.Equal(t, models.FarmasiDispensed, result["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSiapkanResep_NamaApotekerKosong(t *testing.T) {
	_, svc := newFarmasiTestDB(t)

	_, err := svc.SiapkanResep(42, "")
	assert.ErrorIs(t, err, ErrNamaApotekerKosong)
}

func TestSiapkanResep_TidakDitemukan(t *testing.T) {
	mock, svc := newFarmasiTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectFarmasiQuery)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nomor_antrian", "status", "nama"}))
	mock.ExpectRollback()

	_, err := svc.SiapkanResep(99, "Ani")
	assert.ErrorIs(t, err, ErrAntrianFarmasiTidakDitemukan)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Menyerahkan obat yang belum disiapkan ditolak; status dan timestamp
// tidak berubah.
func TestSerahkanObat_SebelumSiap(t *testing.T) {
	mock, svc := newFarmasiTestDB(t)

	mock.ExpectBegin()
	expectLookup(mock, 42, "waiting")
	mock.ExpectRollback()

	_, err := svc.SerahkanObat(42)
	assert.ErrorIs(t, err, ErrTransisiFarmasiTidakValid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Stok yang tidak cukup untuk resep menggagalkan seluruh penyerahan;
// status antrian farmasi ikut batal.
func TestSerahkanObat_StokTidakCukup(t *testing.T) {
	mock, svc := newFarmasiTestDB(t)

	mock.ExpectBegin()
	expectLookup(mock, 42, "ready")
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Antrian_Farmasi SET status = ?, dispensed_at = ? WHERE id = ?")).
		WithArgs(models.FarmasiDispensed, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_produk, jumlah FROM Resep_Item WHERE id_rm = ?")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id_produk", "jumlah"}).AddRow(1, 10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nama, stok FROM Produk WHERE id_produk = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nama", "stok"}).AddRow("Paracetamol 500mg", 3))
	mock.ExpectRollback()

	_, err := svc.SerahkanObat(42)
	assert.ErrorIs(t, err, ErrStokObatTidakCukup)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Serah terima terminal: mengulang transisi yang sama ditolak, jadi
// dispensed_at tidak pernah tertimpa.
func TestSerahkanObat_DuaKali(t *testing.T) {
	mock, svc := newFarmasiTestDB(t)

	mock.ExpectBegin()
	expectLookup(mock, 42, "dispensed")
	mock.ExpectRollback()

	_, err := svc.SerahkanObat(42)
	assert.ErrorIs(t, err, ErrTransisiFarmasiTidakValid)

	assert.NoError(t, mock.ExpectationsWereMet())
}
