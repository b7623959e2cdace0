package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func ConnectDb(url string, log *utils.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  url,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Error),
	})

	if err != nil {
		return nil, err
	}

	log.Info("✅ Database connection successfully")

	log.Info("📦 Setting database connection pool...")
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// ConnectMemoryDb opens a fresh in-memory sqlite database with the same
// schema. Used by tests; behavior-equivalent for the conditional-update
// protocol. cache=shared keeps gorm's pooled connections on one database.
func ConnectMemoryDb() (*gorm.DB, error) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB, trigger bool, log *utils.Logger) error {

	if trigger {
		log.Info("📦 Migrating database...")
		entities := []interface{}{
			&models.UserAccount{},
			&models.Round{},
			&models.Bet{},
			&models.DepositClaim{},
			&models.WithdrawalRequest{},
			&models.SettlementTicket{},
		}

		if err := db.AutoMigrate(entities...); err != nil {
			log.Errorf("✖ Failed to migrate database: %v", err)
			return err
		}
	}

	log.Info("✅ Database schema ready")
	return nil
}
