package models

import "time"

type Pasien struct {
	IDPasien     int64     `json:"id_pasien"`
	NoRM         string    `json:"no_rm"`
	Nama         string    `json:"nama"`
	NIK          string    `json:"nik"`
	JenisKelamin string    `json:"jenis_kelamin"`
	TanggalLahir time.Time `json:"tanggal_lahir"`
	Alamat       string    `json:"alamat"`
	NoTelp       string    `json:"no_telp"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasienRequest adalah payload pendaftaran pasien baru.
type PasienRequest struct {
	Nama         string `json:"nama"`
	NIK          string `json:"nik"`
	JenisKelamin string `json:"jenis_kelamin"`
	TanggalLahir string `json:"tanggal_lahir"` // YYYY-MM-DD
	Alamat       string `json:"alamat"`
	NoTelp       string `json:"no_telp"`
}

// KunjunganRequest adalah payload pendaftaran kunjungan: membuat
// record Screening plus entri antrian dengan nomor yang dialokasikan.
type KunjunganRequest struct {
	IDPasien int64  `json:"id_pasien"`
	Keluhan  string `json:"keluhan"`
}

type Karyawan struct {
	IDKaryawan int64  `json:"id_karyawan"`
	Nama       string `json:"nama"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	Role       string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
