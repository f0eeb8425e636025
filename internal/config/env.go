package config

import (
	"errors"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/utils"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"

	defaultMongoURI = "mongodb://localhost:27017/justWravel"
	defaultMongoDB  = "justWravel"
	defaultMySQLDSN = "root:@tcp(127.0.0.1:3306)/travel_app?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
)

type Env struct {
	AppAddr string
	GinMode string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	MySQLDSN    string

	RedisURL string
	CacheTTL time.Duration

	CORSOrigins []string

	AuthSecret           string
	OperatorUsername     string
	OperatorPasswordHash string

	ReferencePrefix  string
	ReferenceRetries int
}

// AuthEnabled reports whether operator tokens are required on write routes.
func (e Env) AuthEnabled() bool {
	return e.AuthSecret != ""
}

// LoadEnv reads .env (when present) and then the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: failed to load .env: %v", err)
	}
	return envFromLookup(os.Getenv)
}

func envFromLookup(get func(string) string) Env {
	val := func(key string) string { return strings.TrimSpace(get(key)) }

	appAddr := val("APP_ADDR")
	if appAddr == "" {
		port := val("PORT")
		if port == "" {
			port = "8080"
		}
		appAddr = val("HOST") + ":" + port
	}

	driver := strings.ToLower(val("STORE_DRIVER"))
	switch driver {
	case DriverMySQL, DriverMemory:
	default:
		driver = DriverMongo
	}

	mongoURI := val("DB_URI")
	if mongoURI == "" {
		mongoURI = defaultMongoURI
	}
	mongoDB := val("DB_NAME")
	if mongoDB == "" {
		mongoDB = databaseFromURI(mongoURI)
	}

	mysqlDSN := val("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = defaultMySQLDSN
	}

	cacheTTL := 10 * time.Minute
	if raw := val("CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		} else {
			log.Printf("warning: invalid CACHE_TTL %q, using %s", raw, cacheTTL)
		}
	}

	origins := []string{"http://localhost:5173"}
	if raw := val("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	prefix := utils.DefaultReferencePrefix
	if raw := strings.ToUpper(val("REFERENCE_PREFIX")); raw != "" {
		if utils.IsReferencePrefix(raw) {
			prefix = raw
		} else {
			log.Printf("warning: invalid REFERENCE_PREFIX %q, using %s", raw, prefix)
		}
	}

	retries := 3
	if raw := val("REFERENCE_RETRIES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			retries = n
		} else {
			log.Printf("warning: invalid REFERENCE_RETRIES %q, using %d", raw, retries)
		}
	}

	return Env{
		AppAddr:              appAddr,
		GinMode:              val("GIN_MODE"),
		StoreDriver:          driver,
		MongoURI:             mongoURI,
		MongoDB:              mongoDB,
		MySQLDSN:             mysqlDSN,
		RedisURL:             val("REDIS_URL"),
		CacheTTL:             cacheTTL,
		CORSOrigins:          origins,
		AuthSecret:           val("AUTH_SECRET"),
		OperatorUsername:     val("OPERATOR_USERNAME"),
		OperatorPasswordHash: val("OPERATOR_PASSWORD_HASH"),
		ReferencePrefix:      prefix,
		ReferenceRetries:     retries,
	}
}

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDB
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDB
}
