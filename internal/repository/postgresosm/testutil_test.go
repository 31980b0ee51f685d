package postgresosm

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// testDBConfig holds the test database configuration
type testDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// getTestDBConfig returns the test database configuration from environment variables
// or defaults to a local PostGIS with osm2pgsql-imported contours
func getTestDBConfig() testDBConfig {
	return testDBConfig{
		Host:     getEnv("OSM_DB_HOST", "localhost"),
		Port:     getEnv("OSM_DB_PORT", "5435"),
		User:     getEnv("OSM_DB_USER", "osmuser"),
		Password: getEnv("OSM_DB_PASSWORD", "osmpass"),
		DBName:   getEnv("OSM_DB_NAME", "osm"),
		SSLMode:  getEnv("OSM_DB_SSLMODE", "disable"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects through lib/pq; the test is skipped when the database is unreachable
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := getTestDBConfig()
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Skipf("Contour database not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("Contour database not available: %v", err)
	}

	return NewDBForTest(db, zap.NewNop())
}

// teardownTestDB closes the database connection
func teardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close test database: %v", err)
	}
}

// skipIfNoContours skips the test if no contour lines were imported
func skipIfNoContours(t *testing.T, db *DB) {
	t.Helper()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", planetLineTable, contourFilterExpr)
	if err := db.QueryRowContext(context.Background(), query).Scan(&count); err != nil || count == 0 {
		t.Skipf("Contour data not available: %v", err)
	}
}
