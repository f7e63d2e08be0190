package storage

import (
	"testing"

	"github.com/packdash/backend-go/internal/config"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in         string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"https://s3.example.com/", false, "s3.example.com", true},
		{"http://localhost:9000", true, "localhost:9000", false},
		{"localhost:9000", false, "localhost:9000", false},
		{"//s3.example.com", true, "s3.example.com", true},
	}

	for _, tt := range tests {
		host, secure := normalizeEndpoint(tt.in, tt.useSSL)
		if host != tt.wantHost || secure != tt.wantSecure {
			t.Errorf("normalizeEndpoint(%q, %v) = (%q, %v), want (%q, %v)",
				tt.in, tt.useSSL, host, secure, tt.wantHost, tt.wantSecure)
		}
	}
}

func TestNewMinioClientValidation(t *testing.T) {
	valid := config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "reports",
	}

	if _, err := NewMinioClient(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := []func(*config.StorageConfig){
		func(c *config.StorageConfig) { c.Endpoint = "" },
		func(c *config.StorageConfig) { c.SecretKey = "" },
		func(c *config.StorageConfig) { c.Bucket = "" },
	}
	for i, mutate := range missing {
		cfg := valid
		mutate(&cfg)
		if _, err := NewMinioClient(cfg); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
