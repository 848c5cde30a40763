package internship

import "time"

type Internship struct {
	ID           int64      `gorm:"primaryKey"`
	StudentID    int64      `gorm:"column:student_id;not null;index"`
	CompanyID    int64      `gorm:"column:company_id;not null;index"`
	SupervisorID *int64     `gorm:"column:supervisor_id"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description"`
	StartDate    time.Time  `gorm:"column:start_date;type:date"`
	EndDate      time.Time  `gorm:"column:end_date;type:date"`
	Status       string     `gorm:"column:status;not null;index"`
	ReviewNote   string     `gorm:"column:review_note"`
	ReviewedBy   *int64     `gorm:"column:reviewed_by"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Internship) TableName() string {
	return "internships"
}
