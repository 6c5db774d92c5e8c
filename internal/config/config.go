package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMemory    = "memory"
	DriverMySQL     = "mysql"
	DriverFirestore = "firestore"
)

type Config struct {
	HTTPAddr    string
	StoreDriver string

	// MySQL driver. The DSN needs parseTime=true so timestamps scan into
	// time.Time.
	MySQLDSN string

	// Firestore driver.
	FirestoreProjectID string
	CredentialsFile    string

	// Image uploads. Empty leaves the admin create endpoint without an
	// uploader and creates are rejected.
	GCSBucket string

	// Import source. Both empty means the import endpoint reports not
	// configured.
	NotionAPIKey     string
	NotionDatabaseID string

	CORSAllowedOrigin string
}

// Load reads configuration from the environment. A .env file is applied
// first when present; its absence is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:           getenvDefault("HTTP_ADDR", ":8080"),
		StoreDriver:        strings.ToLower(getenvDefault("STORE_DRIVER", DriverMemory)),
		MySQLDSN:           os.Getenv("MYSQL_DSN"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		NotionAPIKey:       os.Getenv("NOTION_API_KEY"),
		NotionDatabaseID:   os.Getenv("NOTION_DATABASE_ID"),
		CORSAllowedOrigin:  getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
