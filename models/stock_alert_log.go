package models

import (
	"time"
)

type StockAlertLog struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	MedicineID   int       `gorm:"index;not null" json:"medicineId"`
	Type         string    `gorm:"type:varchar(20)" json:"type"` // low_stock, expiring
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed, logged
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`
}
