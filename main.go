package main

import (
	"fmt"
	"log"
	"os"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/routes"
	"github.com/anhpham77346/pharma-care/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Employee{},
		&models.MedicineCategory{},
		&models.Medicine{},
		&models.Supplier{},
		&models.SaleInvoice{},
		&models.SaleInvoiceDetail{},
		&models.StockAlertLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	alertService := services.NewStockAlertService(config.DB)
	alertService.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
