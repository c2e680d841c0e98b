package main

import (
	"gorm.io/gorm"

	"github.com/softdesk/api/internal/models"
)

// registerModels returns all models that need migration, parents first so
// the cascade foreign keys resolve.
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Issue{},
		&models.Comment{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addCommentNameIndex,
		addContributorCascade,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// enableUUIDExtension ensures gen_random_uuid is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addCommentNameIndex backs the per-issue comment name uniqueness check
func addCommentNameIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_comments_issue_name
		ON comments(issue_id, name)
	`).Error
}

// addContributorCascade makes membership edges follow project deletion
func addContributorCascade(db *gorm.DB) error {
	return db.Exec(`
		ALTER TABLE project_contributors
		DROP CONSTRAINT IF EXISTS fk_project_contributors_project,
		ADD CONSTRAINT fk_project_contributors_project
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	`).Error
}
