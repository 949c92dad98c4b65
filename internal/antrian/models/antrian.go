package models

import "time"

// StatusAntrian adalah status entri antrian rawat jalan.
type StatusAntrian string

const (
	StatusWaiting    StatusAntrian = "waiting"
	StatusCalled     StatusAntrian = "called"
	StatusInProgress StatusAntrian = "in-progress"
	StatusCompleted  StatusAntrian = "completed"
)

// StatusScreening adalah status record Screening yang ditautkan ke
// antrian. Kosakatanya sengaja tidak identik dengan StatusAntrian:
// dari sisi perawat, pasien yang sudah dipanggil maupun yang sedang
// diperiksa sama-sama "in-progress".
type StatusScreening string

const (
	ScreeningWaiting    StatusScreening = "waiting"
	ScreeningInProgress StatusScreening = "in-progress"
	ScreeningCompleted  StatusScreening = "completed"
)

// transisiAntrian memetakan status asal yang diizinkan untuk setiap
// status tujuan. "called" boleh diulang dari "called" untuk memanggil
// ulang pasien yang belum datang ke ruang periksa.
var transisiAntrian = map[StatusAntrian][]StatusAntrian{
	StatusCalled:     {StatusWaiting, StatusCalled},
	StatusInProgress: {StatusCalled},
	StatusCompleted:  {StatusInProgress},
}

// TransisiAntrianValid melaporkan apakah perpindahan dari from ke to
// diizinkan. Status hanya bergerak maju; "completed" terminal.
func TransisiAntrianValid(from, to StatusAntrian) bool {
	for _, s := range transisiAntrian[to] {
		if s == from {
			return true
		}
	}
	return false
}

// StatusScreeningUntuk memetakan status antrian ke status Screening
// yang harus disinkronkan pada transisi yang sama.
func StatusScreeningUntuk(s StatusAntrian) StatusScreening {
	switch s {
	case StatusCalled, StatusInProgress:
		return ScreeningInProgress
	case StatusCompleted:
		return ScreeningCompleted
	default:
		return ScreeningWaiting
	}
}

// AntrianCounter adalah satu baris penghitung nomor antrian.
// Tabel ini append-only: satu baris per alokasi, tidak pernah
// di-update atau dihapus.
type AntrianCounter struct {
	ID             int64     `json:"id"`
	Scope          string    `json:"scope"`
	Tanggal        string    `json:"tanggal"` // YYYY-MM-DD, zona waktu klinik
	NomorAntrian   int       `json:"nomor_antrian"`
	NomorTerformat string    `json:"nomor_terformat"`
	CreatedAt      time.Time `json:"created_at"`
}

// Antrian adalah entri antrian rawat jalan; satu per screening.
type Antrian struct {
	IDAntrian    int64         `json:"id_antrian"`
	IDScreening  int64         `json:"id_screening"`
	NomorAntrian int           `json:"nomor_antrian"`
	Status       StatusAntrian `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}
