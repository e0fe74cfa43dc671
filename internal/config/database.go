package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RemoteDB is the global remote database instance (nil in local-only mode)
var RemoteDB *gorm.DB

// LocalDB is the global fallback database instance (always open)
var LocalDB *gorm.DB

// ConnectRemote establishes connection to the hosted MySQL database
func ConnectRemote(cfg *Config) (*gorm.DB, error) {
	dsn := buildDSN(cfg.RemoteDB)

	var gormLogger logger.Interface
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true, // Better performance
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping remote database: %w", err)
	}

	RemoteDB = db

	log.Printf("✅ Remote database connected [%s:%s/%s]",
		cfg.RemoteDB.Host,
		cfg.RemoteDB.Port,
		cfg.RemoteDB.DBName,
	)

	return db, nil
}

// OpenLocal opens the embedded SQLite fallback store.
// This is the Go analog of the browser's IndexedDB fallback: always
// available, file-backed, keyed by the same string ids.
func OpenLocal(cfg *Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.LocalDB.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.LocalDB.Path), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Error),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	LocalDB = db

	log.Printf("✅ Local fallback store opened [%s]", cfg.LocalDB.Path)
	return db, nil
}

// buildDSN returns the remote database connection string
func buildDSN(d RemoteDBConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// CloseDatabases closes both database connections
func CloseDatabases() {
	for _, db := range []*gorm.DB{RemoteDB, LocalDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// ============================================================
// Remote availability predicate
// ============================================================

// RemoteHealth tracks whether the remote database is currently
// reachable. The membership facade consults it once per operation;
// the cron probe keeps it fresh.
type RemoteHealth struct {
	available atomic.Bool
}

// NewRemoteHealth creates the health tracker with an initial state
func NewRemoteHealth(initiallyUp bool) *RemoteHealth {
	h := &RemoteHealth{}
	h.available.Store(initiallyUp)
	return h
}

// Available reports whether the remote database is believed reachable
func (h *RemoteHealth) Available() bool {
	return h.available.Load()
}

// Probe pings the remote database and records the result.
// Returns the new availability state.
func (h *RemoteHealth) Probe(db *gorm.DB) bool {
	if db == nil {
		h.available.Store(false)
		return false
	}

	sqlDB, err := db.DB()
	up := err == nil && sqlDB.Ping() == nil

	was := h.available.Swap(up)
	if was != up {
		if up {
			log.Println("✅ Remote database is reachable again")
		} else {
			log.Println("⚠️ Remote database unreachable, falling back to local store")
		}
	}
	return up
}
