package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want 4000", cfg.Port)
	}
	if cfg.StoreBackend != "postgres" {
		t.Errorf("StoreBackend = %q, want postgres", cfg.StoreBackend)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want localhost", cfg.DBHost)
	}
	if cfg.SeedUsername != "admin" {
		t.Errorf("SeedUsername = %q, want admin", cfg.SeedUsername)
	}
	if cfg.SessionSecret != DefaultSessionSecret {
		t.Errorf("SessionSecret = %q, want the development default", cfg.SessionSecret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_BACKEND", "bolt")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SESSION_SECRET", "real-secret")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.StoreBackend != "bolt" {
		t.Errorf("StoreBackend = %q, want bolt", cfg.StoreBackend)
	}
	if cfg.DBPassword != "s3cret" {
		t.Errorf("DBPassword = %q, want s3cret", cfg.DBPassword)
	}
	if cfg.SessionSecret != "real-secret" {
		t.Errorf("SessionSecret = %q, want real-secret", cfg.SessionSecret)
	}
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "gate")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "logins")

	got := Load().DatabaseDSN()
	want := "postgres://gate:pw@db.internal:5432/logins?sslmode=disable"
	if got != want {
		t.Errorf("DatabaseDSN() = %q, want %q", got, want)
	}
}
