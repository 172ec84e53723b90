package routes

import (
	"os"
	"strings"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/controllers"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Uploaded avatars
	r.Static("/files", "./files")

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.PUT("/profile", controllers.UpdateProfile)
		auth.POST("/change-password", controllers.ChangePassword)
		auth.POST("/avatar", controllers.UpdateAvatar)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Medicine routes
		medicines := api.Group("/medicines")
		{
			medicines.GET("", controllers.GetAllMedicines)
			medicines.POST("", controllers.CreateMedicine)
			medicines.GET("/inventory/all", controllers.GetInventory)
			medicines.GET("/:id", controllers.GetMedicineById)
			medicines.PUT("/:id", controllers.UpdateMedicine)
			medicines.DELETE("/:id", controllers.DeleteMedicine)
		}

		// Medicine category routes
		categories := api.Group("/medicine-categories")
		{
			categories.GET("", controllers.GetAllCategories)
			categories.GET("/:id", controllers.GetCategoryById)
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Supplier routes
		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", controllers.GetAllSuppliers)
			suppliers.GET("/:id", controllers.GetSupplierById)
			suppliers.POST("", controllers.CreateSupplier)
			suppliers.PUT("/:id", controllers.UpdateSupplier)
			suppliers.DELETE("/:id", controllers.DeleteSupplier)
		}

		// Sale invoice routes
		saleInvoices := api.Group("/sale-invoices")
		{
			saleInvoices.POST("", controllers.CreateSaleInvoice)
			saleInvoices.GET("/search", controllers.SearchInvoicesByDate)
			saleInvoices.GET("/report/revenue", controllers.GetRevenueReport)
			saleInvoices.GET("/report/revenue/export", controllers.ExportRevenueReport)
			saleInvoices.GET("/:id", controllers.GetSaleInvoiceById)
		}
	}

	return r
}
