package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/apotek/models"
	"medicare-backend/internal/apotek/services"
)

type PenjualanController struct {
	Service *services.PenjualanService
}

func NewPenjualanController(service *services.PenjualanService) *PenjualanController {
	return &PenjualanController{Service: service}
}

// RecordSaleHandler mencatat penjualan obat bebas.
func (pc *PenjualanController) RecordSaleHandler(c echo.Context) error {
	var req models.PenjualanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	result, err := pc.Service.RecordSale(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemKosong),
			errors.Is(err, services.ErrPembayaranKurang),
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
				"message": "Gagal mencatat penjualan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Penjualan berhasil dicatat",
		"data":    result,
	})
}

// CancelSaleHandler membatalkan penjualan.
func (pc *PenjualanController) CancelSaleHandler(c echo.Context) error {
	idTransaksi, err := strconv.ParseInt(c.Param("id_transaksi"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_transaksi harus berupa angka",
			"data":    nil,
		})
	}

	result, err := pc.Service.CancelSale(idTransaksi)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransaksiTidakDitemukan):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrTransaksiSudahDibatalkan):
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Gagal membatalkan penjualan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Penjualan berhasil dibatalkan",
		"data":    result,
	})
}

// ListTransaksiHandler mengembalikan daftar transaksi penjualan.
func (pc *PenjualanController) ListTransaksiHandler(c echo.Context) error {
	result, err := pc.Service.ListTransaksi(c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar transaksi: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar transaksi",
		"data":    result,
	})
}
