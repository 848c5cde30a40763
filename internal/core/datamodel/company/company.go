package company

import "time"

type Company struct {
	ID            int64     `gorm:"primaryKey"`
	Name          string    `gorm:"column:name;uniqueIndex;not null"`
	Industry      string    `gorm:"column:industry"`
	Address       string    `gorm:"column:address"`
	City          string    `gorm:"column:city"`
	ContactPerson string    `gorm:"column:contact_person"`
	ContactEmail  string    `gorm:"column:contact_email"`
	ContactPhone  string    `gorm:"column:contact_phone"`
	Website       string    `gorm:"column:website"`
	Description   string    `gorm:"column:description"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}
