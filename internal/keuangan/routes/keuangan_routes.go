package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/common/middlewares"
	"medicare-backend/internal/keuangan/controllers"
)

func RegisterKeuanganRoutes(e *echo.Echo, kc *controllers.KeuanganController) {
	g := e.Group("/api/keuangan", middlewares.JWTMiddleware("admin"))
	g.GET("/catatan", kc.ListCatatanHandler)
	g.GET("/ringkasan", kc.GetRingkasanHandler)
}
