package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/internship-management/internal/auth"
	companyDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/company"
	internshipDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/internship"
	studentDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/student"
	userDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/user"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

var (
	clearData    bool
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with one account per role, two companies, students and internships for development and testing purposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		setupLogger(cfg)

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			return fmt.Errorf("failed to init gorm: %w", err)
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Security.BCryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return seedData(ctx, gormDB, hash, clearData)
	},
}

type seedAccount struct {
	Email      string
	Name       string
	Role       auth.Role
	Department string
	Company    string
}

var seedAccounts = []seedAccount{
	{Email: "admin@campus.test", Name: "Campus Admin", Role: auth.RoleAdmin},
	{Email: "teacher@campus.test", Name: "Tia Teacher", Role: auth.RoleTeacher, Department: "Informatics"},
	{Email: "tutor@acme.test", Name: "Tom Tutor", Role: auth.RoleIndustrialTutor, Company: "Acme Robotics"},
	{Email: "student@campus.test", Name: "Sam Student", Role: auth.RoleStudent, Department: "Informatics"},
}

var seedCompanies = []companyDatamodel.Company{
	{Name: "Acme Robotics", Industry: "Manufacturing", City: "Bandung", ContactEmail: "hr@acme.test", IsActive: true},
	{Name: "Globex", Industry: "Software", City: "Jakarta", ContactEmail: "jobs@globex.test", IsActive: true},
}

// seedData inserts the sample rows. Existing rows are left untouched, so
// running it twice is safe.
func seedData(ctx context.Context, db *gorm.DB, passwordHash string, clear bool) error {
	lg := logger.L()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clear {
			for _, model := range []interface{}{
				&internshipDatamodel.Internship{},
				&studentDatamodel.Student{},
				&userDatamodel.User{},
				&companyDatamodel.Company{},
			} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return fmt.Errorf("clear: %w", err)
				}
			}
			lg.Info("cleared existing data")
		}

		companies := make(map[string]int64, len(seedCompanies))
		for _, c := range seedCompanies {
			row := c
			if err := tx.Where(companyDatamodel.Company{Name: c.Name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed company %s: %w", c.Name, err)
			}
			companies[c.Name] = row.ID
		}

		users := make(map[string]int64, len(seedAccounts))
		for _, a := range seedAccounts {
			row := userDatamodel.User{
				Email:        a.Email,
				Name:         a.Name,
				PasswordHash: passwordHash,
				Role:         string(a.Role),
				Department:   a.Department,
				IsActive:     true,
			}
			if a.Company != "" {
				id := companies[a.Company]
				row.CompanyID = &id
			}
			if err := tx.Where(userDatamodel.User{Email: a.Email}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", a.Email, err)
			}
			users[a.Email] = row.ID
			lg.Info("seeded user", "email", a.Email, "role", a.Role)
		}

		studentUserID := users["student@campus.test"]
		students := []studentDatamodel.Student{
			{UserID: &studentUserID, StudentNumber: "IF-2021-001", Name: "Sam Student", Email: "student@campus.test", Department: "Informatics", Program: "Computer Science", Year: 3, IsActive: true},
			{StudentNumber: "IF-2021-002", Name: "Ana Putri", Email: "ana@campus.test", Department: "Informatics", Program: "Information Systems", Year: 3, IsActive: true},
			{StudentNumber: "ME-2022-001", Name: "Max Wijaya", Email: "max@campus.test", Department: "Mechanical", Program: "Mechanical Engineering", Year: 2, IsActive: true},
		}
		studentIDs := make(map[string]int64, len(students))
		for _, s := range students {
			row := s
			if err := tx.Where(studentDatamodel.Student{StudentNumber: s.StudentNumber}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed student %s: %w", s.StudentNumber, err)
			}
			studentIDs[s.StudentNumber] = row.ID
		}

		start := time.Date(time.Now().Year(), time.July, 1, 0, 0, 0, 0, time.UTC)
		internships := []internshipDatamodel.Internship{
			{StudentID: studentIDs["IF-2021-001"], CompanyID: companies["Acme Robotics"], Title: "Robot firmware intern", StartDate: start, EndDate: start.AddDate(0, 3, 0), Status: "pending"},
			{StudentID: studentIDs["ME-2022-001"], CompanyID: companies["Globex"], Title: "Backend intern", StartDate: start, EndDate: start.AddDate(0, 6, 0), Status: "approved"},
		}
		for _, in := range internships {
			row := in
			if err := tx.Where(internshipDatamodel.Internship{StudentID: in.StudentID, CompanyID: in.CompanyID, Title: in.Title}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed internship %s: %w", in.Title, err)
			}
		}

		lg.Info("seed completed", "users", len(users), "companies", len(companies), "students", len(studentIDs))
		return nil
	})
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password123", "password set on every seeded account")
}
