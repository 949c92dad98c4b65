package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/farmasi/services"
	"medicare-backend/ws"
)

type FarmasiController struct {
	Service *services.FarmasiService
}

func NewFarmasiController(service *services.FarmasiService) *FarmasiController {
	return &FarmasiController{Service: service}
}

type siapkanRequest struct {
	NamaApoteker string `json:"nama_apoteker"`
}

// SiapkanResepHandler: apoteker mulai menyiapkan resep.
func (fc *FarmasiController) SiapkanResepHandler(c echo.Context) error {
	idRM, err := strconv.ParseInt(c.Param("id_rm"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_rm harus berupa angka",
			"data":    nil,
		})
	}

	var req siapkanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	result, err := fc.Service.SiapkanResep(idRM, req.NamaApoteker)
	if err != nil {
		return farmasiError(c, err)
	}

	fc.broadcast(result)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Resep sedang disiapkan",
		"data":    result,
	})
}

// TandaiSiapHandler: resep selesai disiapkan, siap diambil pasien.
func (fc *FarmasiController) TandaiSiapHandler(c echo.Context) error {
	idRM, err := strconv.ParseInt(c.Param("id_rm"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_rm harus berupa angka",
			"data":    nil,
		})
	}

	result, err := fc.Service.TandaiSiap(idRM)
	if err != nil {
		return farmasiError(c, err)
	}

	fc.broadcast(result)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Resep siap diambil",
		"data":    result,
	})
}

// SerahkanObatHandler: obat diserahkan ke pasien.
func (fc *FarmasiController) SerahkanObatHandler(c echo.Context) error {
	idRM, err := strconv.ParseInt(c.Param("id_rm"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_rm harus berupa angka",
			"data":    nil,
		})
	}

	result, err := fc.Service.SerahkanObat(idRM)
	if err != nil {
		return farmasiError(c, err)
	}

	fc.broadcast(result)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Obat berhasil diserahkan",
		"data":    result,
	})
}

// GetAntrianHandler mengembalikan antrian farmasi hari ini.
func (fc *FarmasiController) GetAntrianHandler(c echo.Context) error {
	result, err := fc.Service.GetAntrianFarmasiHariIni()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil antrian farmasi: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Antrian farmasi hari ini",
		"data":    result,
	})
}

// GetResepHandler mengembalikan item resep satu rekam medis.
func (fc *FarmasiController) GetResepHandler(c echo.Context) error {
	idRM, err := strconv.ParseInt(c.Param("id_rm"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_rm harus berupa angka",
			"data":    nil,
		})
	}
	result, err := fc.Service.GetResepByRM(idRM)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil resep: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item resep",
		"data":    result,
	})
}

func (fc *FarmasiController) broadcast(result map[string]interface{}) {
	ws.HubInstance.BroadcastJSON(map[string]interface{}{
		"antrian":       "farmasi",
		"nomor_antrian": result["nomor_antrian"],
		"status":        result["status"],
	})
}

func farmasiError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNamaApotekerKosong),
		errors.Is(err, services.ErrStokObatTidakCukup):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	case errors.Is(err, services.ErrAntrianFarmasiTidakDitemukan):
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	case errors.Is(err, services.ErrTransisiFarmasiTidakValid):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal memproses antrian farmasi: " + err.Error(),
			"data":    nil,
		})
	}
}
