package types

import (
	"errors"
	"time"
)

// Config holds the settings shared by the core and the presentation shells.
type Config struct {
	Database     string        `json:"database" yaml:"database" mapstructure:"database"`
	Format       string        `json:"format" yaml:"format" mapstructure:"format"`
	NullText     string        `json:"null_text" yaml:"null_text" mapstructure:"null_text"`
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout" mapstructure:"probe_timeout"`
	Addr         string        `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Output formats understood by the renderers.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Defaults applied by DefaultConfig.
const (
	DefaultProbeTimeout = 5 * time.Second
	DefaultAddr         = "127.0.0.1:8080"
)

// Config validation errors.
var (
	ErrFormatUnknown       = errors.New("unknown output format")
	ErrProbeTimeoutInvalid = errors.New("probe timeout must be positive")
)

var knownFormats = map[string]bool{
	FormatTable: true,
	FormatCSV:   true,
	FormatJSON:  true,
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Format:       FormatTable,
		ProbeTimeout: DefaultProbeTimeout,
		Addr:         DefaultAddr,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if !knownFormats[c.Format] {
		return ErrFormatUnknown
	}
	if c.ProbeTimeout <= 0 {
		return ErrProbeTimeoutInvalid
	}
	return nil
}
