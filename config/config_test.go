package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asteria/config"
)

// Loading configuration must not require deployment secrets, only the
// serving entrypoints enforce them through Validate.
func TestGetWithoutServerEnvironment(t *testing.T) {
	cfg := config.Get()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.App.Language)
}

func TestValidate(t *testing.T) {
	withSecrets := func(backend string) *config.Config {
		cfg := &config.Config{}
		cfg.JWT.AccessSecret = "test-access-secret"
		cfg.JWT.RefreshSecret = "test-refresh-secret"
		cfg.Storage.Backend = backend

		return cfg
	}

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{
			name:    "missing jwt secrets",
			cfg:     &config.Config{},
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set",
		},
		{
			name:    "unknown storage backend",
			cfg:     withSecrets("cloud"),
			wantErr: "unknown storage backend: cloud",
		},
		{
			name:    "postgres backend requires a write host",
			cfg:     withSecrets("postgres"),
			wantErr: "DB_POSTGRES_WRITE_HOST must be set for the postgres storage backend",
		},
		{
			name: "memory backend needs no database credentials",
			cfg:  withSecrets("memory"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Validate(tt.cfg)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
