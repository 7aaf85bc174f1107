// Package config provides environment-driven configuration for the
// feedback board, with embedded version and name metadata.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func init() {
	// Optional .env in the working directory; real env wins.
	_ = godotenv.Load()
}

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
	logLevel := os.Getenv("FBOARD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("FBOARD_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("FBOARD_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("FBOARD_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

// GetSessionSecret returns the cookie-store secret, empty when not set.
// The web server generates a random one per process in that case.
func GetSessionSecret() string {
	return os.Getenv("FBOARD_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	minutes, err := strconv.Atoi(os.Getenv("FBOARD_SESSION_MAX_AGE"))
	if err != nil || minutes <= 0 {
		return 60
	}
	return minutes
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("FBOARD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/fboard"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("FBOARD_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}
