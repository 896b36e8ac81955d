package database

import (
	"path/filepath"
	"testing"

	"userpanel/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitDBCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	m := GetDB().Migrator()
	assert.True(t, m.HasTable(&model.User{}))
	assert.True(t, m.HasColumn(&model.User{}, "username"))
	assert.True(t, m.HasColumn(&model.User{}, "password_hash"))
	assert.True(t, m.HasColumn(&model.User{}, "role"))
}

func TestInitDBAddsRoleColumn(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// A users table from before the role column existed.
	legacy, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, legacy.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL)`).Error)
	require.NoError(t, legacy.Exec(
		`INSERT INTO users (username, password_hash) VALUES ('alice', 'x')`).Error)
	sqlDB, err := legacy.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	assert.True(t, GetDB().Migrator().HasColumn(&model.User{}, "role"))

	var user model.User
	require.NoError(t, GetDB().Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, "user", user.Role)
}

func TestInitDBIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, InitDB(dbPath))
	require.NoError(t, GetDB().Create(&model.User{
		Username:     "alice",
		PasswordHash: "x",
		Role:         "admin",
	}).Error)
	require.NoError(t, CloseDB())

	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	var count int64
	require.NoError(t, GetDB().Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var user model.User
	require.NoError(t, GetDB().Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, "admin", user.Role)
}
