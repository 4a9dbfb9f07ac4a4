package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/blog")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ServerShutdownTimeout)
	assert.Equal(t, int64(65536), cfg.MaxRequestBodyBytes)
	assert.Equal(t, int32(4), cfg.DBMaxConnections)
	assert.Equal(t, "mongodb://localhost:27017/blog", cfg.DatabaseURL)
}

func TestNewServerConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "unset-below")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	_, err := NewServerConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() ServerEnvironment {
		return ServerEnvironment{
			Environment:         "test",
			Port:                8080,
			MaxRequestBodyBytes: 1024,
			DBMaxConnections:    4,
			DBMinConnections:    0,
			DatabaseURL:         "memory://",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ServerEnvironment)
		wantErr bool
	}{
		{"valid", func(*ServerEnvironment) {}, false},
		{"port too low", func(c *ServerEnvironment) { c.Port = 0 }, true},
		{"port too high", func(c *ServerEnvironment) { c.Port = 70000 }, true},
		{"unknown environment", func(c *ServerEnvironment) { c.Environment = "qa" }, true},
		{"zero body limit", func(c *ServerEnvironment) { c.MaxRequestBodyBytes = 0 }, true},
		{"no connections", func(c *ServerEnvironment) { c.DBMaxConnections = 0 }, true},
		{"negative min connections", func(c *ServerEnvironment) { c.DBMinConnections = -1 }, true},
		{"min above max", func(c *ServerEnvironment) { c.DBMinConnections = 5 }, true},
		{"unparseable database url", func(c *ServerEnvironment) { c.DatabaseURL = "mongodb://%zz" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClientConfig(t *testing.T) {
	t.Setenv("BLOG_API_URL", "http://localhost:9999")

	cfg, err := NewClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)

	t.Setenv("TEST_DATABASE_URL", "memory://")
	cfg, err = NewClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory://", cfg.TestDatabaseURL)

	t.Setenv("BLOG_API_URL", "not a url")
	_, err = NewClientConfig()
	assert.Error(t, err)
}
