package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "standard configuration",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				Database: "testdb",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "production configuration",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "produser",
				Password: "securepass123",
				Database: "proddb",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 user=produser password=securepass123 dbname=proddb sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ConnectionString(); got != tt.want {
				t.Errorf("DatabaseConfig.ConnectionString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_RequiresPassword(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	if _, err := Load(); err == nil {
		t.Error("expected error when DB_PASSWORD is not set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	if err := InitConfig("test"); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}
	viper.Set("DB_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Database.Database != "kimera_dev" {
		t.Errorf("Database.Database = %q, want kimera_dev", cfg.Database.Database)
	}
	if !cfg.RegistryCache.Enabled {
		t.Error("RegistryCache.Enabled = false, want true by default")
	}
	if cfg.RegistryCache.TTLMinutes != 5 {
		t.Errorf("RegistryCache.TTLMinutes = %d, want 5", cfg.RegistryCache.TTLMinutes)
	}
}
