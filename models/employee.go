package models

import (
	"time"
)

// Employee is the authenticated actor of the system. Every sale invoice is
// recorded against the employee who created it.
type Employee struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"not null" json:"fullName"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `gorm:"uniqueIndex" json:"phone,omitempty"`
	Email        string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	AvatarUrl    *string    `json:"avatarUrl,omitempty"`

	SaleInvoices []SaleInvoice `gorm:"foreignKey:EmployeeID" json:"-"`
}
