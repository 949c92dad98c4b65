package routes

import (
	"github.com/labstack/echo/v4"

	"medicare-backend/internal/apotek/controllers"
	"medicare-backend/internal/common/middlewares"
)

func RegisterApotekRoutes(e *echo.Echo, ac *controllers.ApotekController, pc *controllers.PenjualanController) {
	g := e.Group("/api/apotek", middlewares.JWTMiddleware("admin", "apoteker"))

	g.GET("/produk", ac.ListProdukHandler)
	g.POST("/produk", ac.CreateProdukHandler)
	g.PUT("/produk/:id_produk", ac.UpdateProdukHandler)
	g.GET("/produk/:id_produk/pergerakan", ac.GetRiwayatPergerakanHandler)
	g.GET("/stok-menipis", ac.GetStokMenipisHandler)
	g.POST("/pergerakan", ac.CatatPergerakanHandler)

	g.GET("/pemasok", ac.ListPemasokHandler)
	g.POST("/pemasok", ac.CreatePemasokHandler)

	g.GET("/transaksi", pc.ListTransaksiHandler)
	g.POST("/transaksi", pc.RecordSaleHandler)
	g.PUT("/transaksi/:id_transaksi/batal", pc.CancelSaleHandler)
}
