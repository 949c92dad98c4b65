package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/antrian/services"
	"medicare-backend/ws"
)

type AntrianController struct {
	AntrianService *services.AntrianService
	CounterService *services.CounterService
}

func NewAntrianController(antrianService *services.AntrianService, counterService *services.CounterService) *AntrianController {
	return &AntrianController{AntrianService: antrianService, CounterService: counterService}
}

// PanggilPasienHandler memanggil pasien berikutnya berdasarkan id_screening.
func (ac *AntrianController) PanggilPasienHandler(c echo.Context) error {
	idScreening, err := strconv.ParseInt(c.Param("id_screening"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_screening harus berupa angka",
			"data":    nil,
		})
	}

	result, err := ac.AntrianService.PanggilPasien(idScreening)
	if err != nil {
		return antrianError(c, err)
	}

	// Kabari layar ruang tunggu.
	ws.HubInstance.BroadcastJSON(map[string]interface{}{
		"antrian":       "screening",
		"nomor_antrian": result["nomor_antrian"],
		"status":        result["status"],
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Pasien berhasil dipanggil",
		"data":    result,
	})
}

// MulaiPemeriksaanHandler menandai pasien masuk ruang periksa.
func (ac *AntrianController) MulaiPemeriksaanHandler(c echo.Context) error {
	idScreening, err := strconv.ParseInt(c.Param("id_screening"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_screening harus berupa angka",
			"data":    nil,
		})
	}

	result, err := ac.AntrianService.MulaiPemeriksaan(idScreening)
	if err != nil {
		return antrianError(c, err)
	}

	ws.HubInstance.BroadcastJSON(map[string]interface{}{
		"antrian":       "screening",
		"nomor_antrian": result["nomor_antrian"],
		"status":        result["status"],
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Pemeriksaan dimulai",
		"data":    result,
	})
}

// GetAntrianHariIniHandler mengembalikan daftar antrian hari ini,
// opsional difilter query param status.
func (ac *AntrianController) GetAntrianHariIniHandler(c echo.Context) error {
	results, err := ac.AntrianService.GetAntrianHariIni(c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar antrian: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar antrian hari ini",
		"data":    results,
	})
}

// GetStatsHandler mengembalikan statistik antrian hari ini untuk satu
// scope ("screening" default, atau "farmasi").
func (ac *AntrianController) GetStatsHandler(c echo.Context) error {
	scope := c.QueryParam("scope")
	if scope == "" {
		scope = services.ScopeScreening
	}
	if scope != services.ScopeScreening && scope != services.ScopeFarmasi {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "scope harus 'screening' atau 'farmasi'",
			"data":    nil,
		})
	}

	stats, err := ac.CounterService.GetTodayStats(scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil statistik antrian: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Statistik antrian hari ini",
		"data":    stats,
	})
}

func antrianError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrAntrianTidakDitemukan):
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	case errors.Is(err, services.ErrTransisiTidakValid):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal memproses antrian: " + err.Error(),
			"data":    nil,
		})
	}
}
