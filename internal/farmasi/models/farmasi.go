package models

import (
	"database/sql"
	"time"
)

// StatusFarmasi adalah status entri antrian farmasi.
type StatusFarmasi string

const (
	FarmasiWaiting   StatusFarmasi = "waiting"
	FarmasiPreparing StatusFarmasi = "preparing"
	FarmasiReady     StatusFarmasi = "ready"
	FarmasiDispensed StatusFarmasi = "dispensed"
)

// Status hanya bergerak maju; "dispensed" terminal. Mengulang transisi
// yang sudah lewat ditolak supaya timestamp tiap status terisi tepat
// satu kali.
var transisiFarmasi = map[StatusFarmasi]StatusFarmasi{
	FarmasiPreparing: FarmasiWaiting,
	FarmasiReady:     FarmasiPreparing,
	FarmasiDispensed: FarmasiReady,
}

func TransisiFarmasiValid(from, to StatusFarmasi) bool {
	return transisiFarmasi[to] == from
}

// AntrianFarmasi adalah entri antrian farmasi; satu per rekam medis.
type AntrianFarmasi struct {
	ID           int64          `json:"id"`
	IDRM         int64          `json:"id_rm"`
	NomorAntrian int            `json:"nomor_antrian"`
	Status       StatusFarmasi  `json:"status"`
	NamaApoteker sql.NullString `json:"nama_apoteker"`
	StartedAt    sql.NullTime   `json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
	DispensedAt  sql.NullTime   `json:"dispensed_at"`
	CreatedAt    time.Time      `json:"created_at"`
}
