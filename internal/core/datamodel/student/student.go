package student

import "time"

// Student is the academic record of an intern. UserID links it to the
// student's login account when one exists.
type Student struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        *int64    `gorm:"column:user_id;index"`
	StudentNumber string    `gorm:"column:student_number;uniqueIndex;not null"`
	Name          string    `gorm:"column:name;not null"`
	Email         string    `gorm:"column:email"`
	Department    string    `gorm:"column:department;index"`
	Program       string    `gorm:"column:program"`
	Year          int       `gorm:"column:year"`
	Phone         string    `gorm:"column:phone"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Student) TableName() string {
	return "students"
}
