package models

import "time"

type Produk struct {
	IDProduk    int64     `json:"id_produk"`
	Nama        string    `json:"nama"`
	Kategori    string    `json:"kategori"`
	Satuan      string    `json:"satuan"`
	Harga       float64   `json:"harga"`
	Stok        int       `json:"stok"`
	StokMinimum int       `json:"stok_minimum"`
	IDPemasok   int64     `json:"id_pemasok"`
	CreatedAt   time.Time `json:"created_at"`
}

type Pemasok struct {
	IDPemasok int64  `json:"id_pemasok"`
	Nama      string `json:"nama"`
	Telepon   string `json:"telepon"`
	Alamat    string `json:"alamat"`
}

// Tipe pergerakan stok.
const (
	PergerakanMasuk  = "IN"
	PergerakanKeluar = "OUT"
)

// Alasan pergerakan stok. Tabel Pergerakan_Stok append-only: baris
// tidak pernah diubah atau dihapus setelah dibuat.
const (
	AlasanSale          = "SALE"
	AlasanPurchase      = "PURCHASE"
	AlasanAdjustment    = "ADJUSTMENT"
	AlasanResep         = "PRESCRIPTION"
	AlasanCancelledSale = "CANCELLED_SALE"
)

// PergerakanRequest adalah payload endpoint pergerakan stok manual.
type PergerakanRequest struct {
	IDProduk   int64   `json:"id_produk"`
	Tipe       string  `json:"tipe"`
	Jumlah     int     `json:"jumlah"`
	Alasan     string  `json:"alasan"`
	Keterangan string  `json:"keterangan"`
	TotalBiaya float64 `json:"total_biaya"` // untuk PURCHASE: dicatat sebagai pengeluaran
}

// Status transaksi penjualan.
const (
	TransaksiCompleted = "COMPLETED"
	TransaksiCancelled = "CANCELLED"
)

type TransaksiItem struct {
	IDProduk int64 `json:"id_produk"`
	Jumlah   int   `json:"jumlah"`
}

// PenjualanRequest adalah payload pencatatan penjualan.
type PenjualanRequest struct {
	Items   []TransaksiItem `json:"items"`
	Dibayar float64         `json:"dibayar"`
	Catatan string          `json:"catatan"`
}
