package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"medicare-backend/config"
	antrianControllers "medicare-backend/internal/antrian/controllers"
	antrianRoutes "medicare-backend/internal/antrian/routes"
	antrianServices "medicare-backend/internal/antrian/services"
	apotekControllers "medicare-backend/internal/apotek/controllers"
	apotekRoutes "medicare-backend/internal/apotek/routes"
	apotekServices "medicare-backend/internal/apotek/services"
	farmasiControllers "medicare-backend/internal/farmasi/controllers"
	farmasiRoutes "medicare-backend/internal/farmasi/routes"
	farmasiServices "medicare-backend/internal/farmasi/services"
	keuanganControllers "medicare-backend/internal/keuangan/controllers"
	keuanganRoutes "medicare-backend/internal/keuangan/routes"
	keuanganServices "medicare-backend/internal/keuangan/services"
	pemeriksaanControllers "medicare-backend/internal/pemeriksaan/controllers"
	pemeriksaanRoutes "medicare-backend/internal/pemeriksaan/routes"
	pemeriksaanServices "medicare-backend/internal/pemeriksaan/services"
	pendaftaranControllers "medicare-backend/internal/pendaftaran/controllers"
	pendaftaranRoutes "medicare-backend/internal/pendaftaran/routes"
	pendaftaranServices "medicare-backend/internal/pendaftaran/services"
	"medicare-backend/pkg/storage/mysql"
	"medicare-backend/ws"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.LoadConfig()
	db := mysql.Connect()

	// Service antrian dipakai lintas area: pendaftaran mengambil nomor,
	// pemeriksaan menutup antrian dan membuka antrian farmasi.
	counterService := antrianServices.NewCounterService(db)
	antrianService := antrianServices.NewAntrianService(db)

	authService := pendaftaranServices.NewAuthService(db)
	pendaftaranService := pendaftaranServices.NewPendaftaranService(db, counterService)
	pemeriksaanService := pemeriksaanServices.NewPemeriksaanService(db, antrianService, counterService)
	farmasiService := farmasiServices.NewFarmasiService(db)

	produkService := apotekServices.NewProdukService(db)
	inventoriService := apotekServices.NewInventoriService(db)
	penjualanService := apotekServices.NewPenjualanService(db)
	keuanganService := keuanganServices.NewKeuanganService(db)

	antrianController := antrianControllers.NewAntrianController(antrianService, counterService)
	pendaftaranController := pendaftaranControllers.NewPendaftaranController(pendaftaranService, authService)
	pemeriksaanController := pemeriksaanControllers.NewPemeriksaanController(pemeriksaanService)
	farmasiController := farmasiControllers.NewFarmasiController(farmasiService)
	apotekController := apotekControllers.NewApotekController(produkService, inventoriService)
	penjualanController := apotekControllers.NewPenjualanController(penjualanService)
	keuanganController := keuanganControllers.NewKeuanganController(keuanganService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))

	pendaftaranRoutes.RegisterPendaftaranRoutes(e, pendaftaranController)
	antrianRoutes.RegisterAntrianRoutes(e, antrianController)
	pemeriksaanRoutes.RegisterPemeriksaanRoutes(e, pemeriksaanController)
	farmasiRoutes.RegisterFarmasiRoutes(e, farmasiController)
	apotekRoutes.RegisterApotekRoutes(e, apotekController, penjualanController)
	keuanganRoutes.RegisterKeuanganRoutes(e, keuanganController)

	// Display antrian (layar ruang tunggu / farmasi).
	e.GET("/ws", ws.ServeWS(ws.HubInstance))

	log.Info().Str("port", cfg.Port).Msg("server berjalan")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server berhenti")
	}
}
