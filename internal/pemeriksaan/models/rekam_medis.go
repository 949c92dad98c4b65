package models

import "time"

type RekamMedis struct {
	IDRM        int64     `json:"id_rm"`
	IDScreening int64     `json:"id_screening"`
	IDPasien    int64     `json:"id_pasien"`
	IDKaryawan  int64     `json:"id_karyawan"`
	Diagnosis   string    `json:"diagnosis"`
	Terapi      string    `json:"terapi"`
	Catatan     string    `json:"catatan"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResepItem adalah satu baris resep pada rekam medis.
type ResepItem struct {
	IDProduk    int64  `json:"id_produk"`
	Jumlah      int    `json:"jumlah"`
	AturanPakai string `json:"aturan_pakai"`
}

// PemeriksaanRequest adalah payload penyelesaian pemeriksaan dokter.
type PemeriksaanRequest struct {
	IDScreening int64       `json:"id_screening"`
	Diagnosis   string      `json:"diagnosis"`
	Terapi      string      `json:"terapi"`
	Catatan     string      `json:"catatan"`
	Resep       []ResepItem `json:"resep"`
}
