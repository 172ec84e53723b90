package models

import (
	"time"
)

// Medicine is a stocked product. Quantity is the current on-hand count and is
// only ever decremented through the sale-invoice transaction, never by a blind
// update.
type Medicine struct {
	ID             int        `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Description    *string    `json:"description"`
	Price          int        `gorm:"not null" json:"price"`
	Quantity       int        `gorm:"not null;default:0" json:"quantity"`
	ExpirationDate *time.Time `json:"expirationDate"`
	CategoryID     int        `gorm:"index;not null" json:"categoryId"`

	Category *MedicineCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Details  []SaleInvoiceDetail `gorm:"foreignKey:MedicineID" json:"-"`
}
