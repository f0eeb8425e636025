package config

import (
	"testing"
	"time"
)

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestEnvDefaults(t *testing.T) {
	env := envFromLookup(lookup(nil))

	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.StoreDriver != DriverMongo {
		t.Fatalf("StoreDriver = %q", env.StoreDriver)
	}
	if env.MongoDB != "justWravel" {
		t.Fatalf("MongoDB = %q", env.MongoDB)
	}
	if env.CacheTTL != 10*time.Minute {
		t.Fatalf("CacheTTL = %v", env.CacheTTL)
	}
	if env.ReferenceRetries != 3 {
		t.Fatalf("ReferenceRetries = %d", env.ReferenceRetries)
	}
	if len(env.CORSOrigins) != 1 || env.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}
	if env.AuthEnabled() {
		t.Fatalf("auth should be off without a secret")
	}
	if env.ReferencePrefix != "JW" {
		t.Fatalf("ReferencePrefix = %q", env.ReferencePrefix)
	}
}

func TestEnvOverrides(t *testing.T) {
	env := envFromLookup(lookup(map[string]string{
		"HOST":                 "0.0.0.0",
		"PORT":                 "9000",
		"STORE_DRIVER":         "MySQL",
		"DB_URI":               "mongodb://db:27017/agency?retryWrites=true",
		"CACHE_TTL":            "30s",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"AUTH_SECRET":          "s3cret",
		"REFERENCE_RETRIES":    "0",
	}))

	if env.AppAddr != "0.0.0.0:9000" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.StoreDriver != DriverMySQL {
		t.Fatalf("StoreDriver = %q", env.StoreDriver)
	}
	if env.MongoDB != "agency" {
		t.Fatalf("MongoDB = %q", env.MongoDB)
	}
	if env.CacheTTL != 30*time.Second {
		t.Fatalf("CacheTTL = %v", env.CacheTTL)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}
	if !env.AuthEnabled() {
		t.Fatalf("auth should be on")
	}
	if env.ReferenceRetries != 0 {
		t.Fatalf("ReferenceRetries = %d", env.ReferenceRetries)
	}
}

func TestEnvInvalidValuesFallBack(t *testing.T) {
	env := envFromLookup(lookup(map[string]string{
		"CACHE_TTL":         "soon",
		"REFERENCE_RETRIES": "-2",
		"STORE_DRIVER":      "postgres",
	}))
	if env.CacheTTL != 10*time.Minute || env.ReferenceRetries != 3 || env.StoreDriver != DriverMongo {
		t.Fatalf("unexpected fallback env %+v", env)
	}
}

func TestEnvStoreDriver(t *testing.T) {
	cases := map[string]string{
		"memory":   DriverMemory,
		"mysql":    DriverMySQL,
		"mongo":    DriverMongo,
		"postgres": DriverMongo,
	}
	for in, want := range cases {
		if got := envFromLookup(lookup(map[string]string{"STORE_DRIVER": in})).StoreDriver; got != want {
			t.Fatalf("STORE_DRIVER=%s: got %q, want %q", in, got, want)
		}
	}
}

func TestEnvReferencePrefix(t *testing.T) {
	cases := map[string]string{
		"tv":   "TV",
		" AB ": "AB",
		"J-W":  "JW",
		"ABC":  "JW",
		"A1":   "JW",
		"":     "JW",
	}
	for in, want := range cases {
		if got := envFromLookup(lookup(map[string]string{"REFERENCE_PREFIX": in})).ReferencePrefix; got != want {
			t.Fatalf("REFERENCE_PREFIX=%q: got %q, want %q", in, got, want)
		}
	}
}
