package config

import "fmt"

// SearchConfig tunes the black-box search driver.
type SearchConfig struct {
	// Trials is the fixed evaluation budget of one run.
	Trials int `json:"trials"`
	// Seed drives every random draw of the run for reproducibility.
	Seed int64 `json:"seed"`
	// Startup is the number of uniform trials before model-based sampling.
	Startup int `json:"startup"`
	// Gamma is the fraction of history treated as the good set.
	Gamma float64 `json:"gamma"`
	// Candidates is the number of proposals ranked per model-based trial.
	Candidates int `json:"candidates"`
	// TimeoutSeconds caps a run's wall clock; zero disables the cap. The
	// run still returns its best observation when the cap fires.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *SearchConfig) SetDefaults() {
	if c.Trials == 0 {
		c.Trials = 300
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Startup == 0 {
		c.Startup = 10
	}
	if c.Gamma == 0 {
		c.Gamma = 0.25
	}
	if c.Candidates == 0 {
		c.Candidates = 24
	}
}

// Validate checks mandatory fields.
func (c SearchConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}
	if c.Gamma <= 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in (0, 1)")
	}
	if c.Startup < 1 {
		return fmt.Errorf("startup must be at least 1")
	}
	if c.Candidates < 1 {
		return fmt.Errorf("candidates must be at least 1")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
