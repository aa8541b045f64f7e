package config

// DataConfig locates the training input. When TripsPath is empty the run
// fits on a synthetic panel with a known demand structure instead.
type DataConfig struct {
	TripsPath        string `json:"trips_path"`
	SyntheticBuckets int    `json:"synthetic_buckets"`
	WeatherSeed      int64  `json:"weather_seed"`
}

// SetDefaults applies sane defaults.
func (c *DataConfig) SetDefaults() {
	if c.SyntheticBuckets == 0 {
		c.SyntheticBuckets = 250
	}
	if c.WeatherSeed == 0 {
		c.WeatherSeed = 42
	}
}
