package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"medicare-backend/internal/pendaftaran/models"
	"medicare-backend/internal/pendaftaran/services"
	"medicare-backend/pkg/utils"
	"medicare-backend/ws"
)

type PendaftaranController struct {
	Service     *services.PendaftaranService
	AuthService *services.AuthService
}

func NewPendaftaranController(service *services.PendaftaranService, authService *services.AuthService) *PendaftaranController {
	return &PendaftaranController{Service: service, AuthService: authService}
}

// LoginHandler mengautentikasi karyawan dan mengembalikan token JWT.
func (pc *PendaftaranController) LoginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Username dan password harus diisi",
			"data":    nil,
		})
	}

	karyawan, err := pc.AuthService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrKredensialSalah) {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal memproses login: " + err.Error(),
			"data":    nil,
		})
	}

	token, err := utils.GenerateJWTToken(int(karyawan.IDKaryawan), karyawan.Nama, karyawan.Role,
		karyawan.Username, time.Now().Add(8*time.Hour))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal membuat token: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login berhasil",
		"data": map[string]interface{}{
			"token": token,
			"nama":  karyawan.Nama,
			"role":  karyawan.Role,
		},
	})
}

// RegisterPasienHandler mendaftarkan pasien baru.
func (pc *PendaftaranController) RegisterPasienHandler(c echo.Context) error {
	var req models.PasienRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.Nama == "" || req.NIK == "" || req.TanggalLahir == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Nama, nik, dan tanggal_lahir harus diisi",
			"data":    nil,
		})
	}
	tanggalLahir, err := time.Parse("2006-01-02", req.TanggalLahir)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Format tanggal_lahir tidak valid. Gunakan format YYYY-MM-DD",
			"data":    nil,
		})
	}

	idPasien, noRM, err := pc.Service.RegisterPasien(models.Pasien{
		Nama:         req.Nama,
		NIK:          req.NIK,
		JenisKelamin: req.JenisKelamin,
		TanggalLahir: tanggalLahir,
		Alamat:       req.Alamat,
		NoTelp:       req.NoTelp,
	})
	if err != nil {
		if errors.Is(err, services.ErrNIKSudahTerdaftar) {
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"field":   "nik",
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mendaftarkan pasien: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Pasien berhasil didaftarkan",
		"data": map[string]interface{}{
			"id_pasien": idPasien,
			"no_rm":     noRM,
		},
	})
}

// RegisterKunjunganHandler mendaftarkan kunjungan dan mengembalikan
// nomor antrian yang dialokasikan.
func (pc *PendaftaranController) RegisterKunjunganHandler(c echo.Context) error {
	var req models.KunjunganRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.IDPasien == 0 || req.Keluhan == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "id_pasien dan keluhan harus diisi",
			"data":    nil,
		})
	}

	result, err := pc.Service.RegisterKunjungan(req)
	if err != nil {
		if errors.Is(err, services.ErrPasienTidakDitemukan) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mendaftarkan kunjungan: " + err.Error(),
			"data":    nil,
		})
	}

	ws.HubInstance.BroadcastJSON(map[string]interface{}{
		"antrian":       "screening",
		"nomor_antrian": result["nomor_antrian"],
		"status":        result["status"],
	})

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Kunjungan berhasil didaftarkan",
		"data":    result,
	})
}

// ListPasienHandler mengembalikan daftar pasien; query param q untuk
// mencari berdasarkan nama atau NIK.
func (pc *PendaftaranController) ListPasienHandler(c echo.Context) error {
	result, err := pc.Service.ListPasien(c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Gagal mengambil daftar pasien: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daftar pasien",
		"data":    result,
	})
}
