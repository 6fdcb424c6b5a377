// Package config loads and validates osmfang configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

// Config is the top-level configuration struct for osmfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Input        string `mapstructure:"input"`
	OutputPrefix string `mapstructure:"output_prefix"`
	StartDate    string `mapstructure:"start_date"`
	EndDate      string `mapstructure:"end_date"`
	Plot         string `mapstructure:"plot"`
	MinEditDays  int    `mapstructure:"min_edit_days"`
	MinNumDays   int    `mapstructure:"min_num_days"`
	Workers      int    `mapstructure:"workers"`
	Compress     bool   `mapstructure:"compress"`
}

// Defaults for the report configuration surface.
const (
	// DefaultMinEditDays filters the per-user report to editors with at
	// least this many distinct days in the rolling window. Many editors
	// have 1 or 2 edit days, which clutters the data.
	DefaultMinEditDays = 20

	// DefaultMinNumDays is the minimum per-user report span length.
	DefaultMinNumDays = 3

	// DefaultWorkers selects the CPU count at runtime.
	DefaultWorkers = 0
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidMinEditDays indicates a negative min_edit_days value.
	ErrInvalidMinEditDays = errors.New("min_edit_days must not be negative")
	// ErrInvalidMinNumDays indicates a negative min_num_days value.
	ErrInvalidMinNumDays = errors.New("min_num_days must not be negative")
	// ErrInvalidWorkers indicates a negative workers value.
	ErrInvalidWorkers = errors.New("workers must not be negative")
	// ErrInvalidDate indicates an unparseable start_date or end_date.
	ErrInvalidDate = errors.New("dates must use the 2006-01-02 format")
)

// Validate checks value ranges and date formats.
func (c *Config) Validate() error {
	if c.MinEditDays < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinEditDays, c.MinEditDays)
	}

	if c.MinNumDays < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinNumDays, c.MinNumDays)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}

	for _, date := range []string{c.StartDate, c.EndDate} {
		if date == "" {
			continue
		}

		_, err := activity.ParseDay(date)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
	}

	return nil
}
