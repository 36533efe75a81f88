package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Crawler.Timeout)
	assert.Equal(t, time.Second, cfg.Crawler.PageDelay)
	assert.Equal(t, 5, cfg.Crawler.SitesPerRun)
	assert.Equal(t, 10, cfg.Crawler.MaxPagesPerSite)
	assert.False(t, cfg.Crawler.StrictPhones)
	assert.Equal(t, "IN", cfg.Crawler.PhoneRegion)
	assert.Equal(t, "India", cfg.Search.Region)
	assert.Equal(t, ".in", cfg.Search.RegionTLD)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, "None", cfg.Export.Placeholder)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero timeout", func(c *Config) { c.Crawler.Timeout = 0 }, "crawler.timeout"},
		{"negative delay", func(c *Config) { c.Crawler.PageDelay = -time.Second }, "crawler.page_delay"},
		{"zero sites", func(c *Config) { c.Crawler.SitesPerRun = 0 }, "crawler.sites_per_run"},
		{"zero pages", func(c *Config) { c.Crawler.MaxPagesPerSite = 0 }, "crawler.max_pages_per_site"},
		{"zero results", func(c *Config) { c.Search.MaxResults = 0 }, "search.max_results"},
		{"no ner endpoint", func(c *Config) { c.NER.Endpoint = "" }, "ner.endpoint"},
		{"no storage path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
