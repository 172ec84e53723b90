// controllers/medicine_category.go
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

// CategoryInput defines the expected JSON structure for creating or updating a category
type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// GetAllCategories retrieves all medicine categories, sorted by name
func GetAllCategories(c *gin.Context) {
	var categories []models.MedicineCategory
	if err := config.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// GetCategoryById retrieves a specific category by ID
func GetCategoryById(c *gin.Context) {
	id := c.Param("id")

	var category models.MedicineCategory
	if err := config.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// CreateCategory creates a new medicine category
func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Category name must not be empty")
		return
	}

	// Name must be unique
	var existing models.MedicineCategory
	result := config.DB.Where("name = ?", input.Name).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Category name already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.MedicineCategory{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
		"message": "Category created successfully",
	})
}

// UpdateCategory updates an existing medicine category
func UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Category name must not be empty")
		return
	}

	var category models.MedicineCategory
	if err := config.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Re-check name uniqueness only when it changes
	if input.Name != category.Name {
		var duplicate models.MedicineCategory
		result := config.DB.Where("name = ?", input.Name).First(&duplicate)
		if result.Error == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Category name already exists")
			return
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	category.Name = input.Name
	category.Description = input.Description

	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
		"message": "Category updated successfully",
	})
}

// DeleteCategory deletes a category unless medicines still reference it
func DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	var category models.MedicineCategory
	if err := config.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var referenced int64
	if err := config.DB.Model(&models.Medicine{}).
		Where("category_id = ?", category.ID).
		Count(&referenced).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if referenced > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete category that is in use")
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}
