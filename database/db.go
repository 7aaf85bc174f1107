// Package database manages the sqlite database lifecycle for the
// feedback board: opening, migrations and error classification.
package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/feedbackboard/feedbackboard/config"
	"github.com/feedbackboard/feedbackboard/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Feedback{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens (creating if needed) the sqlite database at dbPath and
// runs migrations. Foreign keys are enforced so feedback rows cascade
// with their owner.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	// _foreign_keys in the DSN applies to every pooled connection, so
	// the cascade from users to feedback always holds.
	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	return initModels()
}

// CloseDB checkpoints the WAL and closes the underlying connection.
func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		log.Printf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation,
// e.g. a username or email collision at registration.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Checkpoint flushes the sqlite WAL into the main database file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
