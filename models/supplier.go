package models

type Supplier struct {
	ID      int     `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Address string  `gorm:"not null" json:"address"`
	Phone   string  `gorm:"not null" json:"phone"`
	Email   *string `json:"email"`
}
