package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/godror/godror"
)

// NewMigrateOracleDB opens a plain database/sql connection for running
// migrations. The migration runner uses godror while the API server uses
// go-ora; keeping the two paths on separate drivers means a driver bug in
// one cannot take down the other.
func NewMigrateOracleDB(user, password, host string, port int, service string) (*sql.DB, error) {
	params := godror.ConnectionParams{}
	params.Username = user
	params.Password = godror.NewPassword(password)
	params.ConnectString = fmt.Sprintf("%s:%d/%s", host, port, service)

	db := sql.OpenDB(godror.NewConnector(params))
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}

// RunMigrations executes every *.up.sql file in the given directory in
// lexical order. Statements in a file are separated by lines containing
// only "/" (Oracle SQL*Plus convention) so a file can hold several DDL
// statements.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}

		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
			}
		}

		log.Printf("Executed migration: %s", file.Name())
	}

	log.Println("Migrations completed successfully")
	return nil
}

func splitStatements(content string) []string {
	var stmts []string
	for _, chunk := range strings.Split(content, "\n/\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			stmts = append(stmts, chunk)
		}
	}
	return stmts
}
