package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	BlobFS = "fs"
	BlobS3 = "s3"
)

type Config struct {
	AppPort  string
	LogLevel string

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs       int
	DashboardCacheSecs int

	TemplateDir       string
	ReportCatalogPath string

	BlobDriver  string
	BlobRoot    string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool

	MemberNumberWidth int
	RenderConcurrency int
	PhoneRegion       string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the process environment, after merging a .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		SQLitePath: getenv("SQLITE_PATH", "coop.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "coop"),
		MySQLUser: getenv("MYSQL_USER", "coop"),
		MySQLPass: getenv("MYSQL_PASS", "coop"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		DashboardCacheSecs: getenvInt("DASHBOARD_CACHE_SECONDS", 30),

		TemplateDir:       getenv("TEMPLATE_DIR", "templates"),
		ReportCatalogPath: os.Getenv("REPORT_CATALOG_PATH"),

		BlobDriver: strings.ToLower(getenv("BLOB_DRIVER", BlobFS)),
		BlobRoot:   getenv("BLOB_ROOT", "generated_reports"),
		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Region:   getenv("S3_REGION", "us-east-1"),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),

		S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),

		MemberNumberWidth: getenvInt("MEMBER_NUMBER_WIDTH", 9),
		RenderConcurrency: getenvInt("RENDER_CONCURRENCY", 4),
		PhoneRegion:       strings.ToUpper(getenv("PHONE_REGION", "NP")),
	}
	if v, err := strconv.ParseBool(os.Getenv("S3_PATH_STYLE")); err == nil {
		c.S3PathStyle = v
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.BlobDriver {
	case BlobFS:
		if c.BlobRoot == "" {
			return errors.New("missing BLOB_ROOT")
		}
	case BlobS3:
		if c.S3Bucket == "" {
			return errors.New("missing S3_BUCKET")
		}
	default:
		return fmt.Errorf("unsupported BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.MemberNumberWidth <= 0 {
		return errors.New("MEMBER_NUMBER_WIDTH must be positive")
	}
	if c.DashboardCacheSecs < 0 {
		return errors.New("DASHBOARD_CACHE_SECONDS must not be negative")
	}
	if c.RenderConcurrency <= 0 {
		return errors.New("RENDER_CONCURRENCY must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}
