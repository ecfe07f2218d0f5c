package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orm-lessons/internal/models"
	"orm-lessons/internal/sqlerr"
)

// CreateAll creates every entity table that does not exist yet and then adds
// the foreign keys declared in models.Entities.
func CreateAll(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	db = db.WithContext(ctx)
	entities := models.Entities()

	for _, e := range entities {
		if err := db.AutoMigrate(e.Model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", e.Table(), sqlerr.Translate(err))
		}
		log.Info().Str("table", e.Table()).Msg("table ready")
	}

	for _, e := range entities {
		for _, fk := range e.ForeignKeys {
			if db.Migrator().HasConstraint(e.Model, fk.Name) {
				continue
			}
			if err := addForeignKey(db, e.Table(), fk); err != nil {
				return fmt.Errorf("failed to add %s: %w", fk.Name, sqlerr.Translate(err))
			}
			log.Info().Str("table", e.Table()).Str("constraint", fk.Name).Str("on_delete", string(fk.OnDelete)).Msg("foreign key added")
		}
	}
	return nil
}

func addForeignKey(db *gorm.DB, table string, fk models.ForeignKey) error {
	return db.Exec(
		"ALTER TABLE ? ADD CONSTRAINT ? FOREIGN KEY (?) REFERENCES ? (?) ON DELETE "+string(fk.OnDelete),
		clause.Table{Name: table},
		clause.Column{Name: fk.Name},
		clause.Column{Name: fk.Column},
		clause.Table{Name: fk.RefTable},
		clause.Column{Name: fk.RefColumn},
	).Error
}

// DropAll drops every entity table, dependents first.
func DropAll(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	db = db.WithContext(ctx)
	entities := models.Entities()

	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		if err := db.Migrator().DropTable(e.Model); err != nil {
			return fmt.Errorf("failed to drop %s: %w", e.Table(), sqlerr.Translate(err))
		}
		log.Info().Str("table", e.Table()).Msg("table dropped")
	}
	return nil
}
