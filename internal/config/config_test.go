package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Targets.Calories != 2000 {
		t.Errorf("calorie target = %v, want 2000", cfg.Targets.Calories)
	}
	if cfg.Insights.TargetCount != 6 || cfg.Insights.CategoryCap != 2 {
		t.Errorf("insights defaults = %+v", cfg.Insights)
	}
	if cfg.Insights.CacheTTL().Hours() != 7*24 {
		t.Errorf("cache ttl = %v, want 168h", cfg.Insights.CacheTTL())
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("store backend = %s, want memory", cfg.Store.Backend)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Targets:  TargetsConfig{Calories: 2000, Protein: 140, Water: 2000},
			Insights: InsightsConfig{TargetCount: 6, MinScore: 0.3, CategoryCap: 2, CacheTTLDays: 7},
			Store:    StoreConfig{Backend: "memory"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c := base()
	c.Targets.Calories = 0
	if err := c.Validate(); err == nil {
		t.Error("zero calorie target accepted")
	}

	c = base()
	c.Store.Backend = "redis"
	if err := c.Validate(); err == nil {
		t.Error("unknown store backend accepted")
	}

	c = base()
	c.Store.Backend = "pebble"
	if err := c.Validate(); err == nil {
		t.Error("pebble backend without path accepted")
	}

	c = base()
	c.Model.Enabled = true
	if err := c.Validate(); err == nil {
		t.Error("enabled model without base url accepted")
	}
}
