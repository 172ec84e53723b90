// controllers/sale_invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaleItemInput is one requested line of a sale
type SaleItemInput struct {
	MedicineID int `json:"medicineId"`
	Quantity   int `json:"quantity"`
	UnitPrice  int `json:"unitPrice"`
}

// CreateSaleInvoiceInput defines the expected JSON structure for creating a sale invoice
type CreateSaleInvoiceInput struct {
	Items          []SaleItemInput `json:"items"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

// CreateSaleInvoice converts a proposed sale into a durable invoice plus
// inventory decrement, all-or-nothing. Any invalid or under-stocked item
// aborts the whole transaction.
func CreateSaleInvoice(c *gin.Context) {
	employeeID := c.GetInt("userId")
	if employeeID == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee ID not found in context")
		return
	}

	var input CreateSaleInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Items) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input data")
		return
	}

	// A retried request carrying the same key returns the stored result
	// instead of creating a duplicate invoice.
	if input.IdempotencyKey != "" {
		var existing models.SaleInvoice
		err := config.DB.Preload("Details").
			Where("idempotency_key = ?", input.IdempotencyKey).
			First(&existing).Error
		if err == nil {
			details := existing.Details
			existing.Details = nil
			c.JSON(http.StatusOK, gin.H{
				"message": "Sale invoice already processed",
				"data":    gin.H{"invoice": existing, "details": details},
			})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invoice := models.SaleInvoice{
		InvoiceDate: time.Now(),
		EmployeeID:  employeeID,
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		invoice.IdempotencyKey = &key
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sale invoice")
		return
	}

	// Items are processed strictly in request order: a later line may reference
	// the same medicine as an earlier one and must see its decrement.
	details := make([]models.SaleInvoiceDetail, 0, len(input.Items))
	for _, item := range input.Items {
		if item.MedicineID <= 0 || item.Quantity <= 0 || item.UnitPrice <= 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid item data")
			return
		}

		var medicine models.Medicine
		if err := tx.First(&medicine, item.MedicineID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest,
					fmt.Sprintf("Medicine with ID %d not found", item.MedicineID))
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		// Conditional decrement: the quantity guard runs inside the UPDATE so
		// two concurrent sales cannot both consume the same stock.
		res := tx.Model(&models.Medicine{}).
			Where("id = ? AND quantity >= ?", item.MedicineID, item.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
		if res.Error != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory")
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest,
				"Insufficient inventory for medicine: "+medicine.Name)
			return
		}

		detail := models.SaleInvoiceDetail{
			SaleInvoiceID: invoice.ID,
			MedicineID:    item.MedicineID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice detail")
			return
		}
		details = append(details, detail)
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sale invoice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale invoice created successfully",
		"data":    gin.H{"invoice": invoice, "details": details},
	})
}

// GetSaleInvoiceById retrieves a specific sale invoice with its employee and details
func GetSaleInvoiceById(c *gin.Context) {
	id := c.Param("id")

	var invoice models.SaleInvoice
	err := config.DB.
		Preload("Employee", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name")
		}).
		Preload("Details.Medicine").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to get sale invoice")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

// SearchInvoicesByDate returns all invoices within the inclusive date range,
// newest first.
func SearchInvoicesByDate(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, end, err := utils.ParseDateRange(startDate, endDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var invoices []models.SaleInvoice
	err = config.DB.
		Preload("Employee", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name")
		}).
		Preload("Details.Medicine").
		Where("invoice_date BETWEEN ? AND ?", start, end).
		Order("invoice_date DESC").
		Find(&invoices).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}
