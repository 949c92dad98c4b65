package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/common/middlewares"
	"medicare-backend/internal/pemeriksaan/models"
	"medicare-backend/internal/pemeriksaan/services"
	"medicare-backend/pkg/utils"
	"medicare-backend/ws"
)

type PemeriksaanController struct {
	Service *services.PemeriksaanService
}

func NewPemeriksaanController(service *services.PemeriksaanService) *PemeriksaanController {
	return &PemeriksaanController{Service: service}
}

// SimpanPemeriksaanHandler menyimpan hasil pemeriksaan dokter dan,
// jika ada resep, menerbitkan nomor antrian farmasi.
func (pc *PemeriksaanController) SimpanPemeriksaanHandler(c echo.Context) error {
	var req models.PemeriksaanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.IDScreening == 0 || req.Diagnosis == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_screening dan diagnosis harus diisi",
			"data":    nil,
		})
	}

	claims := c.Get(middlewares.ContextKeyClaims).(*utils.Claims)

	result, err := pc.Service.SimpanPemeriksaan(req, int64(claims.IDKaryawan))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScreeningTidakDitemukan):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrResepKosong):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Gagal menyimpan pemeriksaan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	if nomor, ok := result["nomor_antrian_farmasi"]; ok {
		ws.HubInstance.BroadcastJSON(map[string]interface{}{
			"antrian":       "farmasi",
			"nomor_antrian": nomor,
			"status":        "waiting",
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Pemeriksaan berhasil disimpan",
		"data":    result,
	})
}

// GetPemeriksaanHariIniHandler mengembalikan pemeriksaan hari ini.
func (pc *PemeriksaanController) GetPemeriksaanHariIniHandler(c echo.Context) error {
	result, err := pc.Service.GetPemeriksaanHariIni()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar pemeriksaan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Pemeriksaan hari ini",
		"data":    result,
	})
}

// GetRiwayatHandler mengembalikan riwayat pemeriksaan seorang pasien.
func (pc *PemeriksaanController) GetRiwayatHandler(c echo.Context) error {
	idPasien, err := strconv.ParseInt(c.Param("id_pasien"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_pasien harus berupa angka",
			"data":    nil,
		})
	}

	result, err := pc.Service.GetRiwayatByPasien(idPasien)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil riwayat pemeriksaan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Riwayat pemeriksaan",
		"data":    result,
	})
}
