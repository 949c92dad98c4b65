package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/common/middlewares"
	"medicare-backend/internal/pendaftaran/controllers"
)

func RegisterPendaftaranRoutes(e *echo.Echo, pc *controllers.PendaftaranController) {
	// Login tidak dilindungi.
	e.POST("/api/login", pc.LoginHandler)

	g := e.Group("/api/pendaftaran", middlewares.JWTMiddleware("admin", "perawat"))
	g.GET("/pasien", pc.ListPasienHandler)
	g.POST("/pasien", pc.RegisterPasienHandler)
	g.POST("/kunjungan", pc.RegisterKunjunganHandler)
}
