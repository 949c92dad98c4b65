package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/apotek/models"
	"medicare-backend/internal/apotek/services"
)

type ApotekController struct {
	ProdukService    *services.ProdukService
	InventoriService *services.InventoriService
}

func NewApotekController(produkService *services.ProdukService, inventoriService *services.InventoriService) *ApotekController {
	return &ApotekController{ProdukService: produkService, InventoriService: inventoriService}
}

// CreateProdukHandler menambahkan produk baru.
func (ac *ApotekController) CreateProdukHandler(c echo.Context) error {
	var p models.Produk
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if p.Nama == "" || p.Satuan == "" || p.Harga <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Nama, satuan, dan harga harus diisi",
			"data":    nil,
		})
	}

	id, err := ac.ProdukService.CreateProduk(p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal menambahkan produk: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Produk berhasil ditambahkan",
		"data":    map[string]interface{}{"id_produk": id},
	})
}

// UpdateProdukHandler mengubah data produk (selain stok).
func (ac *ApotekController) UpdateProdukHandler(c echo.Context) error {
	idProduk, err := strconv.ParseInt(c.Param("id_produk"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_produk harus berupa angka",
			"data":    nil,
		})
	}
	var p models.Produk
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := ac.ProdukService.UpdateProduk(idProduk, p); err != nil {
		if errors.Is(err, services.ErrProdukTidakDitemukan) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengupdate produk: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Produk berhasil diupdate",
		"data":    nil,
	})
}

// ListProdukHandler mengembalikan daftar produk (q, limit, page).
func (ac *ApotekController) ListProdukHandler(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := ac.ProdukService.ListProduk(c.QueryParam("q"), limit, page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar produk: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar produk",
		"data":    result,
	})
}

// CatatPergerakanHandler mencatat pergerakan stok manual.
func (ac *ApotekController) CatatPergerakanHandler(c echo.Context) error {
	var req models.PergerakanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	result, err := ac.InventoriService.CatatPergerakan(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTipePergerakanTidakValid),
			errors.Is(err, services.ErrJumlahTidakValid),
			errors.Is(err, services.ErrStokTidakCukup):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrProdukTidakDitemukan):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Gagal mencatat pergerakan stok: " + err.Error(),
				"data":    nil,
			})
		}
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Pergerakan stok berhasil dicatat",
		"data":    result,
	})
}

// GetRiwayatPergerakanHandler mengembalikan log pergerakan sebuah produk.
func (ac *ApotekController) GetRiwayatPergerakanHandler(c echo.Context) error {
	idProduk, err := strconv.ParseInt(c.Param("id_produk"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_produk harus berupa angka",
			"data":    nil,
		})
	}
	result, err := ac.InventoriService.GetRiwayatPergerakan(idProduk)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil riwayat pergerakan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Riwayat pergerakan stok",
		"data":    result,
	})
}

// GetStokMenipisHandler mengembalikan produk dengan stok <= minimum.
func (ac *ApotekController) GetStokMenipisHandler(c echo.Context) error {
	result, err := ac.InventoriService.GetStokMenipis()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar stok menipis: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar stok menipis",
		"data":    result,
	})
}

// CreatePemasokHandler menambahkan pemasok baru.
func (ac *ApotekController) CreatePemasokHandler(c echo.Context) error {
	var p models.Pemasok
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if p.Nama == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Nama pemasok harus diisi",
			"data":    nil,
		})
	}

	id, err := ac.ProdukService.CreatePemasok(p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal menambahkan pemasok: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Pemasok berhasil ditambahkan",
		"data":    map[string]interface{}{"id_pemasok": id},
	})
}

// ListPemasokHandler mengembalikan semua pemasok.
func (ac *ApotekController) ListPemasokHandler(c echo.Context) error {
	result, err := ac.ProdukService.ListPemasok()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar pemasok: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar pemasok",
		"data":    result,
	})
}
