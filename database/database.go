package database

import (
	"chalkboard/config"
	"chalkboard/models"
	courseModels "chalkboard/models/course"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes the database connection for the configured dialect
func ConnectDb() {
	db, err := openDialect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

func openDialect() (*gorm.DB, error) {
	cfg := config.AppConfig

	switch cfg.DBDialect {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Content{},
		&courseModels.Enrollment{},
		&courseModels.Sale{},
		&courseModels.PlatformMetric{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// One active enrollment per (course, student). MySQL has no partial
	// indexes, so there the application-level check is the only guard.
	if db.Dialector.Name() != "mysql" {
		err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_active_enrollment
			 ON enrollments (course_id, student_id)
			 WHERE status = 'active' AND deleted_at IS NULL`,
		).Error
		if err != nil {
			log.Fatalf("Failed to create active-enrollment index: %v", err)
		}
	} else {
		log.Println("Warning: partial unique indexes are unsupported on MySQL; duplicate active enrollments are only checked in the application.")
	}

	log.Println("Migrations completed successfully.")
}
