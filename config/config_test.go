package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"AppPort", c.AppPort, "8080"},
		{"DailyRewardPoints", c.DailyRewardPoints, 10},
		{"LevelSize", c.LevelSize, 8},
		{"LevelRewardPoints", c.LevelRewardPoints, 50},
		{"DefaultTimezone", c.DefaultTimezone, "UTC"},
		{"RateLimitPerMinute", c.RateLimitPerMinute, 60},
		{"DBName", c.DBName, "zerofake"},
		{"RedisPort", c.RedisPort, 6379},
		{"LogLevel", c.LogLevel, "info"},
		{"RegisterMaxPerIPPerDay", c.RegisterMaxPerIPPerDay, 5},
		{"LeaderboardCacheTTLSec", c.LeaderboardCacheTTLSec, 60},
		{"RoomJanitorInterval", c.RoomJanitorInterval, 5 * time.Minute},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestApplyDefaults_DoesNotClobber(t *testing.T) {
	c := AppConfig{
		AppPort:           "9000",
		DailyRewardPoints: 25,
		DefaultTimezone:   "Asia/Tokyo",
		AllowedOrigins:    []string{"https://app.example.com"},
	}
	applyDefaults(&c)

	if c.AppPort != "9000" {
		t.Errorf("AppPort clobbered: %s", c.AppPort)
	}
	if c.DailyRewardPoints != 25 {
		t.Errorf("DailyRewardPoints clobbered: %d", c.DailyRewardPoints)
	}
	if c.DefaultTimezone != "Asia/Tokyo" {
		t.Errorf("DefaultTimezone clobbered: %s", c.DefaultTimezone)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins clobbered: %v", c.AllowedOrigins)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DAILY_REWARD_POINTS", "15")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Berlin")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	if c.DailyRewardPoints != 15 {
		t.Errorf("DailyRewardPoints = %d, want 15", c.DailyRewardPoints)
	}
	if c.DefaultTimezone != "Europe/Berlin" {
		t.Errorf("DefaultTimezone = %s, want Europe/Berlin", c.DefaultTimezone)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"a,b,c", 3},
		{" a , , b ", 2},
		{"", 0},
		{",,,", 0},
	}
	for _, tt := range tests {
		if got := splitAndTrim(tt.raw); len(got) != tt.want {
			t.Errorf("splitAndTrim(%q) = %v, want %d items", tt.raw, got, tt.want)
		}
	}
}
