package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically. Missing generation credentials are detected
// here, eagerly, rather than surfacing as a silent no-op at first use.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Generation.MaxWordsPerJob <= 0 {
		return fmt.Errorf("generation.max_words must be > 0 (got %d)", c.Generation.MaxWordsPerJob)
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation.model must not be empty")
	}

	if err := c.Playback.validate(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	return nil
}

func (p *PlaybackConfig) validate() error {
	if p.FlipSettle < 0 || p.BlockGap < 0 || p.WordGap < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if p.Rate <= 0 {
		return fmt.Errorf("rate must be > 0 (got %v)", p.Rate)
	}
	return nil
}
