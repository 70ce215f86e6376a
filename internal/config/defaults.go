package config

import "github.com/runnerr0/replay/internal/normalize"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Timezone: normalize.DefaultTimezone,
		Filter: FilterConfig{
			MinPlayMs: normalize.DefaultMinPlayMs,
		},
		Limits: LimitsConfig{
			MaxTotalBytes: 104857600, // 100 MiB
			MaxRows:       2000000,
		},
		Output: OutputConfig{
			TopN: 10,
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8733,
			MaxUploadBytes: 104857600,
		},
	}
}
