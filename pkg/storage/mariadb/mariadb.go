package mariadb

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mvcastillo/healthoffice-backend/config"
)

var (
	db   *sql.DB
	once sync.Once
)

// Connect opens the MariaDB connection. Credentials come from .env via
// config. Fatal on failure: nothing in this service runs without storage.
func Connect() *sql.DB {
	once.Do(func() {
		cfg := config.LoadConfig()
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FManila",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			log.Fatalf("failed to open database connection: %v", err)
		}

		if err = db.Ping(); err != nil {
			log.Fatalf("failed to ping database: %v", err)
		}

		log.Println("Connected to MariaDB.")
	})

	return db
}

// Open is the non-fatal variant used by the sweeper binary, which must
// report a setup failure through its exit code instead of log.Fatal.
func Open() (*sql.DB, error) {
	cfg := config.LoadConfig()
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FManila",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// GetDB returns the established connection.
func GetDB() *sql.DB {
	return db
}
