package inits

import (
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/models"
)

func DB(conn string) (db *gorm.DB, err error) {
	// TranslateError lets handlers match gorm.ErrDuplicatedKey on unique violations
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{TranslateError: true}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Mission{},
		&models.Project{},
	)
}

func initData(db *gorm.DB) (err error) {
	var counter int64

	// Seed admin account
	admin := models.User{
		Name:  "Mission Control Admin",
		Email: "admin@nasa.com",
		Role:  constants.RoleAdmin,
	}
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 {
		if admin.Password, err = argon2id.CreateHash("admin123", argon2id.DefaultParams); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		if err = db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	} else {
		if err = db.First(&admin, "email = ?", admin.Email).Error; err != nil {
			// Seeded content needs an owner; without the well-known admin just
			// leave existing data untouched.
			return nil
		}
	}

	// Seed missions
	if err = db.Model(&models.Mission{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get mission count: %w", err)
	} else if counter == 0 {
		if err = db.Create([]*models.Mission{
			{
				Title:       "Apollo 11",
				Description: "First manned mission to land on the Moon.",
				LaunchDate:  time.Date(1969, 7, 16, 0, 0, 0, 0, time.UTC),
				Status:      constants.StatusCompleted,
				ImageURL:    p("https://example.com/apollo11.jpg"),
				Crew:        pq.StringArray{"Neil Armstrong", "Buzz Aldrin", "Michael Collins"},
				CreatedBy:   admin.ID,
			},
			{
				Title:       "Mars Rover",
				Description: "Exploration of Mars surface with rovers.",
				LaunchDate:  time.Date(2021, 2, 18, 0, 0, 0, 0, time.UTC),
				Status:      constants.StatusActive,
				ImageURL:    p("https://example.com/mars.jpg"),
				CreatedBy:   admin.ID,
			},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial missions: %w", err)
		}
	}

	// Seed projects
	if err = db.Model(&models.Project{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get project count: %w", err)
	} else if counter == 0 {
		if err = db.Create([]*models.Project{
			{
				Title:       "James Webb Telescope",
				Description: "Next-gen space telescope.",
				StartDate:   time.Date(2021, 12, 25, 0, 0, 0, 0, time.UTC),
				Status:      constants.StatusActive,
				ImageURL:    p("https://example.com/jameswebb.jpg"),
				Tags:        pq.StringArray{"telescope", "infrared"},
				CreatedBy:   admin.ID,
			},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial projects: %w", err)
		}
	}

	return nil
}

func p[T any](v T) *T {
	return &v
}
