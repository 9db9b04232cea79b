package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ParseFlags ────────────────────────────────────────────────────────────────

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "localhost:8081",
		"-grpc-address", "127.0.0.1:9090",
		"-d", "postgres://flags",
		"-cache", "render.bolt",
		"-config", "cfg.json",
		"-token-sign-key", "k",
		"-token-issuer", "iss",
		"-token-duration", "90m",
		"-request-timeout", "10s",
		"-hash-key", "h",
		"-public-url", "https://n.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, "postgres://flags", cfg.Storage.DB.DSN)
	assert.Equal(t, "render.bolt", cfg.Storage.Cache.Path)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, 90*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "h", cfg.App.HashKey)
	assert.Equal(t, "https://n.example.com", cfg.App.PublicURL)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Server.GRPCAddress)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := ParseFlags([]string{"-a", "not-an-address"})
	assert.Error(t, err)
}

// ── NetAddress ────────────────────────────────────────────────────────────────

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{name: "localhost", input: "localhost:8080", wantHost: "localhost", wantPort: 8080},
		{name: "ipv4", input: "127.0.0.1:80", wantHost: "127.0.0.1", wantPort: 80},
		{name: "empty host", input: ":9090", wantHost: "", wantPort: 9090},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non numeric port", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
	assert.Equal(t, ":9090", (&NetAddress{Port: 9090}).String())
}
