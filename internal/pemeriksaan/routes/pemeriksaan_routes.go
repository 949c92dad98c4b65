package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/common/middlewares"
	"medicare-backend/internal/pemeriksaan/controllers"
)

func RegisterPemeriksaanRoutes(e *echo.Echo, pc *controllers.PemeriksaanController) {
	g := e.Group("/api/pemeriksaan", middlewares.JWTMiddleware("admin", "dokter"))
	g.POST("", pc.SimpanPemeriksaanHandler)
	g.GET("", pc.GetPemeriksaanHariIniHandler)
	g.GET("/riwayat/:id_pasien", pc.GetRiwayatHandler)
}
