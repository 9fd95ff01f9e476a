package database

import (
	"fmt"
	"log"
	"os"

	"highlaunchpad/internal/domain/automation"
	"highlaunchpad/internal/domain/billing"
	"highlaunchpad/internal/domain/builder"
	"highlaunchpad/internal/domain/courses"
	"highlaunchpad/internal/domain/crm"
	"highlaunchpad/internal/domain/forms"
	"highlaunchpad/internal/domain/plans"
	"highlaunchpad/internal/domain/social"
	"highlaunchpad/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := builder.SeedTemplates(DB); err != nil {
		log.Fatal("❌ Template seed error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests can
// run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.Session{},
		&users.VerificationToken{},
		&plans.Plan{},
		&billing.Payment{},

		// builder
		&builder.Template{},
		&builder.Page{},
		&builder.PageComponent{},

		// crm
		&crm.Lead{},

		// social
		&social.Profile{},
		&social.Post{},

		// forms
		&forms.Submission{},

		// courses
		&courses.Course{},
		&courses.CourseModule{},
		&courses.Lesson{},

		// automation
		&automation.Flow{},
	)
}
