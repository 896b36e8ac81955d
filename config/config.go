// Package config exposes process-level settings read from the environment,
// plus the embedded application name and version.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"userpanel/util/random"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("UP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("UP_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("UP_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("UP_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("UP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("UP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

var (
	secretOnce     sync.Once
	fallbackSecret string
)

// GetSecret returns the key used to sign session cookies. When UP_SECRET is
// not set, a random per-process secret is generated; sessions then do not
// survive a restart.
func GetSecret() string {
	secret := os.Getenv("UP_SECRET")
	if secret != "" {
		return secret
	}
	secretOnce.Do(func() {
		fallbackSecret = random.Seq(32)
	})
	return fallbackSecret
}
