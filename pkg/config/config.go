package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jstittsworth/draft-assistant/internal/models"
)

// ConfigurationError reports invalid engine configuration: bad league
// shape, a negative time budget, an unknown policy name. It surfaces at
// setup, before any simulation runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

type Config struct {
	// Environment
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// League shape
	RosterSlots int  `mapstructure:"ROSTER_SIZE"`
	SnakeDraft  bool `mapstructure:"SNAKE_DRAFT"`

	// Starting lineup slots
	QBSlots   int `mapstructure:"QB_SIZE"`
	RBSlots   int `mapstructure:"RB_SIZE"`
	WRSlots   int `mapstructure:"WR_SIZE"`
	TESlots   int `mapstructure:"TE_SIZE"`
	FlexSlots int `mapstructure:"FLEX_SIZE"`
	DSTSlots  int `mapstructure:"DST_SIZE"`
	KSlots    int `mapstructure:"K_SIZE"`

	// Simulation
	SimulationSeconds float64 `mapstructure:"SIMULATION_SECONDS"`
	SimulationWorkers int     `mapstructure:"SIMULATION_WORKERS"`
	KDSTMinRound      int     `mapstructure:"KDST_MIN_ROUND"`

	// Setback model
	SetbackPolicy         string  `mapstructure:"SETBACK_POLICY"` // "proportional", "floor"
	SetbackDeltaThreshold float64 `mapstructure:"SETBACK_DELTA_THRESHOLD"`
	SetbackFloorFraction  float64 `mapstructure:"SETBACK_FLOOR_FRACTION"`
	MaxRandomAdjustment   float64 `mapstructure:"MAX_RANDOM_ADJUSTMENT"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("ROSTER_SIZE", 14)
	viper.SetDefault("SNAKE_DRAFT", true)
	viper.SetDefault("QB_SIZE", 1)
	viper.SetDefault("RB_SIZE", 2)
	viper.SetDefault("WR_SIZE", 2)
	viper.SetDefault("TE_SIZE", 1)
	viper.SetDefault("FLEX_SIZE", 1)
	viper.SetDefault("DST_SIZE", 1)
	viper.SetDefault("K_SIZE", 1)
	viper.SetDefault("SIMULATION_SECONDS", 30.0)
	viper.SetDefault("SIMULATION_WORKERS", 4)
	viper.SetDefault("KDST_MIN_ROUND", 7)
	viper.SetDefault("SETBACK_POLICY", "proportional")
	viper.SetDefault("SETBACK_DELTA_THRESHOLD", 0.25)
	viper.SetDefault("SETBACK_FLOOR_FRACTION", 0.25)
	viper.SetDefault("MAX_RANDOM_ADJUSTMENT", 0.1)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks bounds and policy names, returning a
// ConfigurationError for the first violation.
func (c *Config) Validate() error {
	if c.RosterSlots < 1 {
		return &ConfigurationError{Field: "ROSTER_SIZE", Reason: fmt.Sprintf("must be at least 1, got %d", c.RosterSlots)}
	}
	if c.SimulationSeconds < 0 {
		return &ConfigurationError{Field: "SIMULATION_SECONDS", Reason: fmt.Sprintf("must not be negative, got %g", c.SimulationSeconds)}
	}
	if c.SimulationWorkers < 1 {
		return &ConfigurationError{Field: "SIMULATION_WORKERS", Reason: fmt.Sprintf("must be at least 1, got %d", c.SimulationWorkers)}
	}
	switch strings.ToLower(c.SetbackPolicy) {
	case "proportional", "floor":
	default:
		return &ConfigurationError{Field: "SETBACK_POLICY", Reason: fmt.Sprintf("unknown policy %q", c.SetbackPolicy)}
	}
	if c.SetbackDeltaThreshold <= 0 || c.SetbackDeltaThreshold >= 1 {
		return &ConfigurationError{Field: "SETBACK_DELTA_THRESHOLD", Reason: fmt.Sprintf("must be in (0, 1), got %g", c.SetbackDeltaThreshold)}
	}
	if c.SetbackFloorFraction < 0 || c.SetbackFloorFraction >= 1 {
		return &ConfigurationError{Field: "SETBACK_FLOOR_FRACTION", Reason: fmt.Sprintf("must be in [0, 1), got %g", c.SetbackFloorFraction)}
	}
	if c.MaxRandomAdjustment < 0 {
		return &ConfigurationError{Field: "MAX_RANDOM_ADJUSTMENT", Reason: fmt.Sprintf("must not be negative, got %g", c.MaxRandomAdjustment)}
	}
	slots := c.StarterSlots()
	if slots.Total() > c.RosterSlots {
		return &ConfigurationError{Field: "ROSTER_SIZE", Reason: fmt.Sprintf("starting lineup needs %d slots but rosters hold %d", slots.Total(), c.RosterSlots)}
	}
	return nil
}

// StarterSlots returns the configured starting lineup shape.
func (c *Config) StarterSlots() models.StarterSlots {
	return models.StarterSlots{
		QB:   c.QBSlots,
		RB:   c.RBSlots,
		WR:   c.WRSlots,
		TE:   c.TESlots,
		Flex: c.FlexSlots,
		DST:  c.DSTSlots,
		K:    c.KSlots,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
