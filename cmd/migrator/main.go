package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/linemk/order-days/internal/config"
	"github.com/pkg/errors"
)

// buildMigrateDSN добавляет к DSN имя таблицы с версиями миграций
func buildMigrateDSN(dbCfg config.DatabaseConfig, migrationTable string) string {
	return fmt.Sprintf("%s&x-migrations-table=%s", dbCfg.DSN(), migrationTable)
}

func main() {
	var (
		migrationsPathFlag string
		down               bool
	)
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.BoolVar(&down, "down", false, "roll back all migrations")

	// MustLoad вызывает flag.Parse, поэтому флаги объявлены выше
	cfg := config.MustLoad()

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	// Создаем объект мигратора
	m, err := migrate.New(
		"file://"+migrationsPath,
		buildMigrateDSN(cfg.Database, cfg.Migrations.Table),
	)
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to create migrate instance"))
	}

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
		} else {
			log.Fatal(errors.Wrap(err, "migration failed"))
		}
	} else {
		log.Println("Migrations applied successfully")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to open database"))
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT table_name 
		FROM information_schema.tables 
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to query tables"))
	}
	defer rows.Close()

	fmt.Println("Current tables in the database:")
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			log.Fatal(errors.Wrap(err, "failed to scan row"))
		}
		fmt.Println(" -", tableName)
	}
	if err := rows.Err(); err != nil {
		log.Fatal(errors.Wrap(err, "error reading rows"))
	}
}
