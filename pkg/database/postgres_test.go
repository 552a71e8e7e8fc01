package database

import (
	"testing"

	"filmorate/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestConnString(t *testing.T) {
	tests := []struct {
		name   string
		config utils.DatabaseConfig
	}{
		{
			name:   "plain",
			config: utils.DatabaseConfig{Host: "localhost", Port: "5432", Name: "filmorate", User: "postgres", Password: "secret"},
		},
		{
			name:   "password with space and quotes",
			config: utils.DatabaseConfig{Host: "db", Port: "6543", Name: "films", User: "app", Password: `p@ss w'rd"\`},
		},
		{
			name:   "reserved url characters",
			config: utils.DatabaseConfig{Host: "db", Port: "5432", Name: "films", User: "a:b", Password: "x/y?z#=&%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := pgxpool.ParseConfig(ConnString(tt.config))
			if err != nil {
				t.Fatalf("ParseConfig() error = %v", err)
			}

			conn := cfg.ConnConfig
			if conn.User != tt.config.User {
				t.Errorf("User = %q, want %q", conn.User, tt.config.User)
			}
			if conn.Password != tt.config.Password {
				t.Errorf("Password = %q, want %q", conn.Password, tt.config.Password)
			}
			if conn.Database != tt.config.Name {
				t.Errorf("Database = %q, want %q", conn.Database, tt.config.Name)
			}
			if conn.Host != tt.config.Host {
				t.Errorf("Host = %q, want %q", conn.Host, tt.config.Host)
			}
			if conn.TLSConfig != nil {
				t.Error("TLSConfig set, want sslmode=disable")
			}
		})
	}
}
