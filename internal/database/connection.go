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

package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"secret-access-api/src/config"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

// DB holds the database connection
type DB struct {
	*sql.DB
	driver string // Database driver name (sqlite3, postgres, etc.)
}

// Driver returns the underlying database driver name (e.g., sqlite3, postgres).
func (db *DB) Driver() string {
	return db.driver
}

// NewConnection creates a new database connection using configuration
func NewConnection(cfg *config.Database) (*DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite3":
		// Ensure the directory exists for SQLite
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		db, err = sql.Open("sqlite3", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// Enable foreign key constraints for SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	case "postgres", "postgresql":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)

		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: cfg.Driver}, nil
}

// InitSchema initializes the database schema.
// Automatically selects the appropriate schema file based on the database
// driver: schema.{sqlite|postgres}.sql inside the given directory.
func (db *DB) InitSchema(schemaDir string) error {
	dir := schemaDir
	if dir == "" {
		dir = "./internal/database"
	}

	var schemaFile string
	switch db.driver {
	case "sqlite3":
		schemaFile = "schema.sqlite.sql"
	case "postgres", "postgresql":
		schemaFile = "schema.postgres.sql"
	default:
		return fmt.Errorf("unsupported database driver for schema initialization: %s", db.driver)
	}

	schemaSQL, err := os.ReadFile(filepath.Join(dir, schemaFile))
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", schemaFile, err)
	}

	// PostgreSQL needs statements executed individually; its driver does
	// not handle multi-statement Exec() well. SQLite takes the file whole.
	if db.driver == "postgres" || db.driver == "postgresql" {
		return db.initSchemaPostgres(string(schemaSQL))
	}

	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// initSchemaPostgres splits the schema into statements and executes them
// inside a single transaction so foreign keys are validated at commit.
func (db *DB) initSchemaPostgres(schemaSQL string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitSQLStatements(schemaSQL) {
		if _, err := tx.Exec(stmt); err != nil {
			firstLine, _, _ := strings.Cut(stmt, "\n")
			return fmt.Errorf("failed to execute schema statement %q: %w", firstLine, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// splitSQLStatements splits SQL on semicolons and drops empty chunks and
// pure comment lines. The schema files here contain no string literals
// with embedded semicolons.
func splitSQLStatements(schemaSQL string) []string {
	var statements []string
	for _, chunk := range strings.Split(schemaSQL, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Rebind converts a SQL query with `?` placeholders to the appropriate
// format for the current database driver. For PostgreSQL, converts `?` to
// `$1, $2, ...`. For SQLite, leaves `?` as-is.
func (db *DB) Rebind(query string) string {
	if db.driver != "postgres" && db.driver != "postgresql" {
		return query
	}

	parts := strings.Split(query, "?")
	if len(parts) == 1 {
		return query // No placeholders
	}

	var result strings.Builder
	for i, part := range parts {
		if i > 0 {
			result.WriteString(fmt.Sprintf("$%d", i))
		}
		result.WriteString(part)
	}
	return result.String()
}
