// controllers/supplier.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SupplierInput defines the expected JSON structure for creating or updating a supplier
type SupplierInput struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Email   *string `json:"email"`
}

func (in *SupplierInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "Supplier name must not be empty"
	}
	if strings.TrimSpace(in.Address) == "" {
		return "Supplier address must not be empty"
	}
	if !utils.ValidatePhone(in.Phone) {
		return "Supplier phone is not valid"
	}
	return ""
}

// GetAllSuppliers retrieves all suppliers, sorted by name
func GetAllSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve suppliers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": suppliers})
}

// GetSupplierById retrieves a specific supplier by ID
func GetSupplierById(c *gin.Context) {
	id := c.Param("id")

	var supplier models.Supplier
	if err := config.DB.First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": supplier})
}

// CreateSupplier creates a new supplier
func CreateSupplier(c *gin.Context) {
	var input SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	supplier := models.Supplier{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
	}

	if err := config.DB.Create(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
		"message": "Supplier created successfully",
	})
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c *gin.Context) {
	id := c.Param("id")

	var input SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var supplier models.Supplier
	if err := config.DB.First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	supplier.Name = input.Name
	supplier.Address = input.Address
	supplier.Phone = input.Phone
	supplier.Email = input.Email

	if err := config.DB.Save(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
		"message": "Supplier updated successfully",
	})
}

// DeleteSupplier deletes a supplier
func DeleteSupplier(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Delete(&models.Supplier{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Supplier deleted successfully"})
}
