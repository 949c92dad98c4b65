package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/antrian/controllers"
	"medicare-backend/internal/common/middlewares"
)

func RegisterAntrianRoutes(e *echo.Echo, ac *controllers.AntrianController) {
	g := e.Group("/api/antrian", middlewares.JWTMiddleware("admin", "perawat", "dokter"))
	g.GET("", ac.GetAntrianHariIniHandler)
	g.GET("/stats", ac.GetStatsHandler)
	g.PUT("/:id_screening/panggil", ac.PanggilPasienHandler)
	g.PUT("/:id_screening/periksa", ac.MulaiPemeriksaanHandler)
}
