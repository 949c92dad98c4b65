package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/keuangan/services"
)

type KeuanganController struct {
	Service *services.KeuanganService
}

func NewKeuanganController(service *services.KeuanganService) *KeuanganController {
	return &KeuanganController{Service: service}
}

// ListCatatanHandler mengembalikan catatan keuangan dengan filter
// tipe, kategori, dari, sampai.
func (kc *KeuanganController) ListCatatanHandler(c echo.Context) error {
	result, err := kc.Service.ListCatatan(
		c.QueryParam("tipe"),
		c.QueryParam("kategori"),
		c.QueryParam("dari"),
		c.QueryParam("sampai"),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil catatan keuangan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Catatan keuangan",
		"data":    result,
	})
}

// GetRingkasanHandler mengembalikan ringkasan harian; query param
// tanggal opsional (default hari ini).
func (kc *KeuanganController) GetRingkasanHandler(c echo.Context) error {
	result, err := kc.Service.GetRingkasanHarian(c.QueryParam("tanggal"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal menghitung ringkasan harian: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Ringkasan keuangan harian",
		"data":    result,
	})
}
