// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FullName  string `json:"fullName" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FullName  *string `json:"fullName"`
	BirthDate *string `json:"birthDate"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UpdateAvatarInput struct {
	Avatar string `json:"avatar" binding:"required"`
}

// Register creates a new employee account
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Phone number is not valid")
		return
	}

	birthDate, err := time.ParseInLocation(utils.DateLayout, input.BirthDate, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid birth date, expected YYYY-MM-DD")
		return
	}

	// Username, email and phone must all be unused
	var existing models.Employee
	result := config.DB.
		Where("username = ? OR email = ? OR phone = ?", input.Username, input.Email, input.Phone).
		First(&existing)
	if result.Error == nil {
		switch {
		case existing.Username == input.Username:
			utils.RespondWithError(c, http.StatusBadRequest, "Username already exists")
		case existing.Email == input.Email:
			utils.RespondWithError(c, http.StatusBadRequest, "Email already in use")
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Phone number already in use")
		}
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	employee := models.Employee{
		FullName:     input.FullName,
		BirthDate:    &birthDate,
		Address:      input.Address,
		Phone:        input.Phone,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(employee.ID, employee.Username)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": gin.H{
			"userId":   employee.ID,
			"username": employee.Username,
			"token":    token,
		},
	})
}

// Login authenticates an employee by username and password
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	var employee models.Employee
	result := config.DB.Where("username = ?", input.Username).First(&employee)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, employee.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(employee.ID, employee.Username)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"userId":   employee.ID,
			"username": employee.Username,
			"token":    token,
		},
	})
}

// Me returns the authenticated employee's profile
func Me(c *gin.Context) {
	employeeID := c.GetInt("userId")
	if employeeID == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee ID not found in context")
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, employeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": employee})
}

// UpdateProfile updates the authenticated employee's profile fields
func UpdateProfile(c *gin.Context) {
	employeeID := c.GetInt("userId")
	if employeeID == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee ID not found in context")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, employeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.BirthDate != nil {
		birthDate, err := time.ParseInLocation(utils.DateLayout, *input.BirthDate, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid birth date, expected YYYY-MM-DD")
			return
		}
		employee.BirthDate = &birthDate
	}
	if input.Address != nil {
		employee.Address = *input.Address
	}
	if input.Phone != nil && *input.Phone != employee.Phone {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Phone number is not valid")
			return
		}
		var count int64
		config.DB.Model(&models.Employee{}).
			Where("phone = ? AND id <> ?", *input.Phone, employee.ID).
			Count(&count)
		if count > 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Phone number already in use")
			return
		}
		employee.Phone = *input.Phone
	}
	if input.Email != nil && *input.Email != employee.Email {
		var count int64
		config.DB.Model(&models.Employee{}).
			Where("email = ? AND id <> ?", *input.Email, employee.ID).
			Count(&count)
		if count > 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Email already in use")
			return
		}
		employee.Email = *input.Email
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

// ChangePassword replaces the authenticated employee's password
func ChangePassword(c *gin.Context) {
	employeeID := c.GetInt("userId")
	if employeeID == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee ID not found in context")
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, employeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, employee.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	passwordHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := config.DB.Model(&employee).Update("password_hash", passwordHash).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// UpdateAvatar saves a base64-encoded avatar image and replaces the old one
func UpdateAvatar(c *gin.Context) {
	employeeID := c.GetInt("userId")
	if employeeID == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employee ID not found in context")
		return
	}

	var input UpdateAvatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Avatar image is required")
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, employeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	avatarUrl, err := utils.SaveBase64Image(input.Avatar, "./files", "avatar")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid avatar image data")
		return
	}

	if employee.AvatarUrl != nil {
		utils.DeleteFile(*employee.AvatarUrl)
	}

	if err := config.DB.Model(&employee).Update("avatar_url", avatarUrl).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"avatarUrl": avatarUrl},
		"message": "Avatar updated successfully",
	})
}
