package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret: strings.Repeat("s", 32),
			JWTIssuer: "kotoba",
		},
		Generation: GenerationConfig{
			Model:          "claude-sonnet-4-5",
			MaxWordsPerJob: 20,
		},
		Playback: PlaybackConfig{
			FlipSettle: 600 * time.Millisecond,
			BlockGap:   time.Second,
			WordGap:    1500 * time.Millisecond,
			Rate:       1.0,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "short jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "zero max words", mutate: func(c *Config) { c.Generation.MaxWordsPerJob = 0 }, wantErr: true},
		{name: "empty model", mutate: func(c *Config) { c.Generation.Model = "" }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.Playback.BlockGap = -time.Second }, wantErr: true},
		{name: "zero delays allowed", mutate: func(c *Config) {
			c.Playback.FlipSettle, c.Playback.BlockGap, c.Playback.WordGap = 0, 0, 0
		}, wantErr: false},
		{name: "zero rate", mutate: func(c *Config) { c.Playback.Rate = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
