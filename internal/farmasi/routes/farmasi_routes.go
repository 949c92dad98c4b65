package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/common/middlewares"
	"medicare-backend/internal/farmasi/controllers"
)

func RegisterFarmasiRoutes(e *echo.Echo, fc *controllers.FarmasiController) {
	g := e.Group("/api/farmasi", middlewares.JWTMiddleware("admin", "apoteker"))
	g.GET("/antrian", fc.GetAntrianHandler)
	g.GET("/resep/:id_rm", fc.GetResepHandler)
	g.PUT("/antrian/:id_rm/siapkan", fc.SiapkanResepHandler)
	g.PUT("/antrian/:id_rm/siap", fc.TandaiSiapHandler)
	g.PUT("/antrian/:id_rm/serahkan", fc.SerahkanObatHandler)
}
