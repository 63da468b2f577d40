package config

import "testing"

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	if !cfg.Privacy.Enabled {
		t.Error("Privacy should be enabled by default")
	}
	if cfg.Privacy.Threshold != 0.8 {
		t.Errorf("Default threshold = %f, want 0.8", cfg.Privacy.Threshold)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache should be disabled by default")
	}

	if err := validateConfig(cfg); err != nil {
		t.Errorf("Defaults failed validation: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("InvalidPort", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Server.Port = 0
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for port 0")
		}
	})

	t.Run("ThresholdOutOfRange", func(t *testing.T) {
		for _, threshold := range []float64{-0.1, 1.1} {
			cfg := GetDefaults()
			cfg.Privacy.Threshold = threshold
			if err := validateConfig(cfg); err == nil {
				t.Errorf("Expected error for threshold %f", threshold)
			}
		}
	})

	t.Run("ThresholdBoundaries", func(t *testing.T) {
		for _, threshold := range []float64{0, 1} {
			cfg := GetDefaults()
			cfg.Privacy.Threshold = threshold
			if err := validateConfig(cfg); err != nil {
				t.Errorf("Threshold %f should be valid: %v", threshold, err)
			}
		}
	})

	t.Run("CacheEnabledWithoutURL", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Cache.Enabled = true
		cfg.Cache.RedisURL = ""
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for enabled cache without redis_url")
		}
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Logging.Level = "verbose"
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for unknown log level")
		}
	})

	t.Run("InvalidRateLimit", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.RateLimit.RequestsPerMin = 0
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for zero requests_per_min")
		}
	})
}
