package models

type MedicineCategory struct {
	ID          int     `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description *string `json:"description"`

	Medicines []Medicine `gorm:"foreignKey:CategoryID" json:"-"`
}
