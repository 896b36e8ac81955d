// Package database owns the SQLite store and its startup migrations.
package database

import (
	"io/fs"
	"os"
	"path"

	"userpanel/config"
	"userpanel/database/model"
	"userpanel/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

const defaultRole = "user"

type migration struct {
	name string
	run  func(db *gorm.DB) error
}

// Ordered, idempotent migration steps. InitDB runs every step on every start
// before the server accepts traffic; a failing step is fatal to the caller.
var migrations = []migration{
	{"0001_create_users_table", createUsersTable},
	{"0002_add_role_column", addRoleColumn},
}

func createUsersTable(db *gorm.DB) error {
	if db.Migrator().HasTable(&model.User{}) {
		return nil
	}
	return db.AutoMigrate(&model.User{})
}

// addRoleColumn upgrades a pre-existing users table that was created before
// the role column existed. New rows get the column from the model tag; old
// rows are backfilled with the default role.
func addRoleColumn(db *gorm.DB) error {
	m := db.Migrator()
	if m.HasColumn(&model.User{}, "role") {
		return nil
	}
	if err := m.AddColumn(&model.User{}, "Role"); err != nil {
		return err
	}
	return db.Model(&model.User{}).
		Where("role IS NULL OR role = ''").
		Update("role", defaultRole).
		Error
}

func runMigrations() error {
	for _, m := range migrations {
		if err := m.run(db); err != nil {
			logger.Errorf("migration %s failed: %v", m.name, err)
			return err
		}
		logger.Debugf("migration %s ok", m.name)
	}
	return nil
}

// InitDB opens (creating if needed) the SQLite database at dbPath and runs
// all migrations. It must complete before any request is served.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gl gormlogger.Interface
	if config.IsDebug() {
		gl = gormlogger.Default
	} else {
		gl = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	return runMigrations()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		logger.Warning("wal checkpoint on close failed:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	db = nil
	return err
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func IsDuplicate(err error) bool {
	return err == gorm.ErrDuplicatedKey
}

// Checkpoint flushes the WAL into the main database file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
