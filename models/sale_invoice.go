package models

import (
	"time"
)

// SaleInvoice records one completed sale. Immutable once created; there is no
// update or delete path.
type SaleInvoice struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	InvoiceDate time.Time `gorm:"not null;index" json:"invoiceDate"`
	EmployeeID  int       `gorm:"index;not null" json:"employeeId"`

	// Optional client-supplied token used to de-duplicate retried requests.
	IdempotencyKey *string `gorm:"uniqueIndex" json:"-"`

	Employee *Employee           `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Details  []SaleInvoiceDetail `gorm:"foreignKey:SaleInvoiceID" json:"details,omitempty"`
}

// SaleInvoiceDetail is one line item of an invoice. UnitPrice is the price at
// the time of sale as supplied by the caller, not the medicine's listed price.
type SaleInvoiceDetail struct {
	ID            int `gorm:"primaryKey" json:"id"`
	SaleInvoiceID int `gorm:"index;not null" json:"saleInvoiceId"`
	MedicineID    int `gorm:"index;not null" json:"medicineId"`
	Quantity      int `gorm:"not null" json:"quantity"`
	UnitPrice     int `gorm:"not null" json:"unitPrice"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}
