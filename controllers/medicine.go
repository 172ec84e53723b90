// controllers/medicine.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateMedicineInput defines the expected JSON structure for creating a medicine
type CreateMedicineInput struct {
	Name           string     `json:"name" binding:"required"`
	Description    *string    `json:"description"`
	Price          *int       `json:"price" binding:"required,min=0"`
	Quantity       *int       `json:"quantity" binding:"required,min=0"`
	ExpirationDate *time.Time `json:"expirationDate"`
	CategoryID     int        `json:"categoryId" binding:"required"`
}

// InventoryItem is the projected row of the inventory view
type InventoryItem struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	Price          int        `json:"price"`
	ExpirationDate *time.Time `json:"expirationDate"`
	Category       string     `json:"category"`
}

// GetAllMedicines retrieves all medicines with their category, sorted by name
func GetAllMedicines(c *gin.Context) {
	var medicines []models.Medicine
	if err := config.DB.Preload("Category").Order("name ASC").Find(&medicines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medicines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": medicines})
}

// GetMedicineById retrieves a specific medicine by ID
func GetMedicineById(c *gin.Context) {
	id := c.Param("id")

	var medicine models.Medicine
	if err := config.DB.Preload("Category").First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": medicine})
}

// CreateMedicine creates a new medicine
func CreateMedicine(c *gin.Context) {
	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Medicine name must not be empty")
		return
	}

	// Category must exist before the write
	var category models.MedicineCategory
	if err := config.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Medicine category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	medicine := models.Medicine{
		Name:           input.Name,
		Description:    input.Description,
		Price:          *input.Price,
		Quantity:       *input.Quantity,
		ExpirationDate: input.ExpirationDate,
		CategoryID:     input.CategoryID,
	}

	if err := config.DB.Create(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create medicine")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    medicine,
		"message": "Medicine created successfully",
	})
}

// UpdateMedicine updates an existing medicine
func UpdateMedicine(c *gin.Context) {
	id := c.Param("id")

	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Medicine name must not be empty")
		return
	}

	var medicine models.Medicine
	if err := config.DB.First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var category models.MedicineCategory
	if err := config.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Medicine category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	medicine.Name = input.Name
	medicine.Description = input.Description
	medicine.Price = *input.Price
	medicine.Quantity = *input.Quantity
	medicine.ExpirationDate = input.ExpirationDate
	medicine.CategoryID = input.CategoryID

	if err := config.DB.Save(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update medicine")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    medicine,
		"message": "Medicine updated successfully",
	})
}

// DeleteMedicine deletes a medicine unless it has sale history
func DeleteMedicine(c *gin.Context) {
	id := c.Param("id")

	var medicine models.Medicine
	if err := config.DB.First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var referenced int64
	if err := config.DB.Model(&models.SaleInvoiceDetail{}).
		Where("medicine_id = ?", medicine.ID).
		Count(&referenced).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if referenced > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete medicine that is in use")
		return
	}

	if err := config.DB.Delete(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete medicine")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Medicine deleted successfully"})
}

// GetInventory returns the inventory view: a slim projection of every medicine
// with its category name, lowest stock first.
func GetInventory(c *gin.Context) {
	var items []InventoryItem
	err := config.DB.Table("medicines").
		Select("medicines.id, medicines.name, medicines.quantity, medicines.price, medicines.expiration_date, medicine_categories.name AS category").
		Joins("JOIN medicine_categories ON medicine_categories.id = medicines.category_id").
		Order("medicines.quantity ASC").
		Scan(&items).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
