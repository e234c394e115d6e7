/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"DEBUG"`

	// Server configurations
	Port string `envconfig:"PORT" default:"4000"`

	// Database configurations
	Database Database `envconfig:"DATABASE"`
	// DBSchemaDir is the directory holding the per-driver schema files
	// (schema.sqlite.sql, schema.postgres.sql).
	DBSchemaDir string `envconfig:"DB_SCHEMA_DIR" default:"./internal/database"`

	// Secret catalog bootstrap; when empty the compiled-in defaults are used
	CatalogPath string `envconfig:"CATALOG_PATH" default:""`

	// Disclosure configurations
	Disclosure Disclosure `envconfig:"DISCLOSURE"`

	// Auth configurations for principal extraction
	Auth Auth `envconfig:"AUTH"`

	// Notification configurations
	Notifications Notifications `envconfig:"NOTIFICATIONS"`
}

// Database holds database-specific configuration.
// An empty Driver selects the volatile in-memory store.
type Database struct {
	Driver string `envconfig:"DRIVER" default:""`
	// Path is the file path for SQLite databases.
	// Use DATABASE_DB_PATH to override; keeping it distinct from the OS PATH variable.
	Path            string `envconfig:"DB_PATH" default:"./data/access_requests.db"`
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            int    `envconfig:"PORT" default:"5432"`
	Name            string `envconfig:"NAME" default:"access_requests"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	SSLMode         string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" default:"300"` // seconds

	// ExecuteSchemaDDL controls whether to run the schema DDL (CREATE TABLE, etc.) on startup.
	// Set to false when the DB user lacks DDL privileges.
	ExecuteSchemaDDL bool `envconfig:"EXECUTE_SCHEMA_DDL" default:"true"`
}

// Disclosure holds the client-facing disclosure window configuration.
type Disclosure struct {
	// RevealTTLSeconds is how long a revealed secret stays visible before
	// the disclosure session erases it.
	RevealTTLSeconds int `envconfig:"REVEAL_TTL_SECONDS" default:"30"`
}

// Auth holds principal-extraction configuration.
// The engine only ever sees an opaque requester id; whether that id comes
// from a bearer token subject or a plain header is the integrator's choice.
type Auth struct {
	SecretKey      string   `envconfig:"SECRET_KEY" default:"your-secret-key-change-in-production"`
	Issuer         string   `envconfig:"ISSUER" default:"secret-access"`
	SkipPaths      []string `envconfig:"SKIP_PATHS" default:"/health"`
	SkipValidation bool     `envconfig:"SKIP_VALIDATION" default:"true"` // Skip signature validation for development
	// RequesterHeader is the fallback identity header for deployments
	// without token auth.
	RequesterHeader string `envconfig:"REQUESTER_HEADER" default:"X-Requester-Id"`
}

// Notifications holds WebSocket notification configuration.
type Notifications struct {
	MaxConnections int `envconfig:"MAX_CONNECTIONS" default:"1000"`
	WriteTimeout   int `envconfig:"WRITE_TIMEOUT" default:"10"` // seconds
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server struct.
// It uses sync.Once to ensure that the initialization logic is executed only once,
// making it safe for concurrent use. If there is an error during the initialization,
// the function will panic.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance = &Server{}
		err = envconfig.Process("", settingInstance)
		if err == nil {
			err = validateConfig(settingInstance)
		}
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// validateConfig checks cross-field constraints that envconfig defaults
// cannot express.
func validateConfig(cfg *Server) error {
	switch cfg.Database.Driver {
	case "", "sqlite3", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "sqlite3" && cfg.Database.Path == "" {
		return fmt.Errorf("sqlite3 driver selected but DATABASE_DB_PATH is not configured")
	}
	if cfg.Disclosure.RevealTTLSeconds <= 0 {
		return fmt.Errorf("DISCLOSURE_REVEAL_TTL_SECONDS must be a positive number of seconds")
	}
	return nil
}
