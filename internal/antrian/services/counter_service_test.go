package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (sqlmock.Sqlmock, *CounterService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewCounterService(db)
}

func TestFormatNomor(t *testing.T) {
	assert.Equal(t, "001", FormatNomor(1))
	assert.Equal(t, "007", FormatNomor(7))
	assert.Equal(t, "042", FormatNomor(42))
	assert.Equal(t, "123", FormatNomor(123))
	assert.Equal(t, "999", FormatNomor(999))
	// Di atas 999 lebar bertambah, tidak meluap ke "000".
	assert.Equal(t, "1000", FormatNomor(1000))
}

func TestAllocateInTx_NomorPertama(t *testing.T) {
	mock, svc := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT MAX(nomor_antrian) FROM Antrian_Counter WHERE scope = ? AND tanggal = ? FOR UPDATE")).
		WithArgs(ScopeScreening, "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO Antrian_Counter (scope, tanggal, nomor_antrian, nomor_terformat, created_at) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(ScopeScreening, "2024-01-01", 1, "001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	tx, err := svc.DB.Begin()
	require.NoError(t, err)

	counter, err := svc.AllocateInTx(tx, ScopeScreening, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 1, counter.NomorAntrian)
	assert.Equal(t, "001", counter.NomorTerformat)
	assert.Equal(t, "2024-01-01", counter.Tanggal)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateInTx_Berurutan(t *testing.T) {
	mock, svc := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT MAX(nomor_antrian) FROM Antrian_Counter WHERE scope = ? AND tanggal = ? FOR UPDATE")).
		WithArgs(ScopeFarmasi, "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Antrian_Counter")).
		WithArgs(ScopeFarmasi, "2024-01-01", 8, "008", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))

	tx, err := svc.DB.Begin()
	require.NoError(t, err)

	counter, err := svc.AllocateInTx(tx, ScopeFarmasi, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 8, counter.NomorAntrian)
	assert.Equal(t, "008", counter.NomorTerformat)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Tanggal lain tidak mempengaruhi penghitung: max dibaca per tanggal,
// jadi tanggal baru mulai lagi dari 1.
func TestAllocateInTx_TerisolasiPerTanggal(t *testing.T) {
	mock, svc := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(nomor_antrian) FROM Antrian_Counter")).
		WithArgs(ScopeScreening, "2024-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Antrian_Counter")).
		WithArgs(ScopeScreening, "2024-01-02", 1, "001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	tx, err := svc.DB.Begin()
	require.NoError(t, err)

	counter, err := svc.AllocateInTx(tx, ScopeScreening, "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 1, counter.NomorAntrian)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocate_GagalInsertTidakCommit(t *testing.T) {
	mock, svc := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(nomor_antrian) FROM Antrian_Counter")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Antrian_Counter")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := svc.Allocate(ScopeScreening)
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
