package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	antrianservices "medicare-backend/internal/antrian/services"
	"medicare-backend/internal/pemeriksaan/models"
)

func newPemeriksaanTestDB(t *testing.T) (sqlmock.Sqlmock, *PemeriksaanService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	antrian := antrianservices.NewAntrianService(db)
	counter := antrianservices.NewCounterService(db)
	return mock, NewPemeriksaanService(db, antrian, counter)
}

// Penyelesaian pemeriksaan dengan resep: dalam satu transaksi rekam
// medis + item resep tertulis, antrian screening jadi "completed",
// dan pasien masuk antrian farmasi dengan nomor dari counter farmasi.
func TestSimpanPemeriksaan_DenganResep(t *testing.T) {
	mock, svc := newPemeriksaanTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_pasien FROM Screening WHERE id_screening = ?")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id_pasien"}).AddRow(12))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Rekam_Medis")).
		WithArgs(int64(10), int64(12), int64(3), "ISPA", "Istirahat cukup", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Resep_Item")).
		WithArgs(int64(55), int64(1), 10, "3x1 sesudah makan").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.id_antrian, a.nomor_antrian, a.status, p.nama")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id_antrian", "nomor_antrian", "status", "nama"}).
			AddRow(5, 3, "in-progress", "Budi Santoso"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Antrian SET status = ?")).
		WithArgs("completed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Screening SET status = ?")).
		WithArgs("completed", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(nomor_antrian) FROM Antrian_Counter")).
		WithArgs(antrianservices.ScopeFarmasi, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Antrian_Counter")).
		WithArgs(antrianservices.ScopeFarmasi, sqlmock.AnyArg(), 5, "005", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Antrian_Farmasi")).
		WithArgs(int64(55), 5, "waiting", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := svc.SimpanPemeriksaan(models.PemeriksaanRequest{
		IDScreening: 10,
		Diagnosis:   "ISPA",
		Terapi:      "Istirahat cukup",
		Resep:       []models.ResepItem{{IDProduk: 1, Jumlah: 10, AturanPakai: "3x1 sesudah makan"}},
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(55), result["id_rm"])
	assert.Equal(t, "005", result["nomor_antrian_farmasi"])
	assert.Equal(t, 1, result["jumlah_resep"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Tanpa resep tidak ada entri farmasi yang dibuat.
func TestSimpanPemeriksaan_TanpaResep(t *testing.T) {
	mock, svc := newPemeriksaanTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_pasien FROM Screening WHERE id_screening = ?")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id_pasien"}).AddRow(12))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Rekam_Medis")).
		WithArgs(int64(10), int64(12), int64(3), "Kontrol rutin", "Lanjutkan terapi", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(56, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.id_antrian, a.nomor_antrian, a.status, p.nama")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id_antrian", "nomor_antrian", "status", "nama"}).
			AddRow(5, 3, "in-progress", "Budi Santoso"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Antrian SET status = ?")).
		WithArgs("completed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Screening SET status = ?")).
		WithArgs("completed", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.SimpanPemeriksaan(models.PemeriksaanRequest{
		IDScreening: 10,
		Diagnosis:   "Kontrol rutin",
		Terapi:      "Lanjutkan terapi",
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, result["jumlah_resep"])
	assert.NotContains(t, result, "nomor_antrian_farmasi")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSimpanPemeriksaan_ScreeningTidakDitemukan(t *testing.T) {
	mock, svc := newPemeriksaanTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_pasien FROM Screening WHERE id_screening = ?")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id_pasien"}))

	_, err := svc.SimpanPemeriksaan(models.PemeriksaanRequest{IDScreening: 99, Diagnosis: "x"}, 3)
	assert.ErrorIs(t, err, ErrScreeningTidakDitemukan)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSimpanPemeriksaan_ResepTidakLengkap(t *testing.T) {
	mock, svc := newPemeriksaanTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_pasien FROM Screening WHERE id_screening = ?")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id_pasien"}).AddRow(12))

	_, err := svc.SimpanPemeriksaan(models.PemeriksaanRequest{
		IDScreening: 10,
		Diagnosis:   "ISPA",
		Resep:       []models.ResepItem{{IDProduk: 1, Jumlah: 0}},
	}, 3)
	assert.ErrorIs(t, err, ErrResepKosong)

	assert.NoError(t, mock.ExpectationsWereMet())
}
