package config

import (
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "Defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "Bad TTL", mutate: func(c *Config) { c.Catalog.RefreshTTL = "soon" }, wantErr: true},
		{name: "Zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "Port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "Negative page size", mutate: func(c *Config) { c.Prefs.PageSize = -1 }, wantErr: true},
		{name: "Negative visible rows", mutate: func(c *Config) { c.Prefs.VisibleRows = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCatalogRefreshTTL(t *testing.T) {
	cfg := DefaultConfig()
	d, err := cfg.GetCatalogRefreshTTL()
	if err != nil {
		t.Fatalf("GetCatalogRefreshTTL() error = %v", err)
	}
	if d.Hours() != 24 {
		t.Errorf("TTL = %v, want 24h", d)
	}
}
