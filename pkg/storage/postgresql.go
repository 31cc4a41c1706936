package storage

import (
	"fmt"
	"log/slog"

	"github.com/dhis2-sre/channel-admin/pkg/config"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(logger *slog.Logger, c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger:         slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cluster{},

		&model.SecurityDefinition{},
		&model.HTTPBasicAuth{},
		&model.TechnicalAccount{},
		&model.WSSDefinition{},

		&model.ChannelURLDefinition{},
		&model.ChannelURLSecurity{},
	)
}
