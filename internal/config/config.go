// Package config loads console utility settings.
// Settings are taken from defaults, then YAML file, then environment; command line flags override them all.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ava12/lagrum"
)

// Error codes used by this package:
const (
	FileError = lagrum.ConfigErrors + iota
	SyntaxError
	ValueError
)

const (
	DefaultEncoding       = "utf-8"
	DefaultOtherThreshold = 0.05
)

// Config contains utility settings.
type Config struct {
	// Grammar is grammar description file name, empty for built-in grammar.
	Grammar string `yaml:"grammar"`

	// Rule is segmentation start rule, empty for grammar start rule.
	Rule string `yaml:"rule"`

	Encoding string `yaml:"encoding"`

	// NFC enables Unicode NFC normalization of decoded documents.
	NFC bool `yaml:"nfc"`

	// Workers is the number of documents processed in parallel, 0 means the number of CPUs.
	Workers int `yaml:"workers"`

	// OtherThreshold is the share of "other" spans above which a document is reported.
	OtherThreshold float64 `yaml:"other_threshold"`

	Debug bool `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Encoding:       DefaultEncoding,
		Workers:        runtime.NumCPU(),
		OtherThreshold: DefaultOtherThreshold,
	}
}

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap describes environment variables and their effective values.
func (c *Config) AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LAGRUM_CONFIG":          {"LAGRUM_CONFIG", os.Getenv("LAGRUM_CONFIG"), "Configuration file name"},
		"LAGRUM_DEBUG":           {"LAGRUM_DEBUG", c.Debug, "Show additional debug information (e.g. LAGRUM_DEBUG=1)"},
		"LAGRUM_ENCODING":        {"LAGRUM_ENCODING", c.Encoding, "Document encoding (default \"utf-8\")"},
		"LAGRUM_GRAMMAR":         {"LAGRUM_GRAMMAR", c.Grammar, "Grammar description file (default built-in grammar)"},
		"LAGRUM_OTHER_THRESHOLD": {"LAGRUM_OTHER_THRESHOLD", c.OtherThreshold, "Share of unclassified spans reported as a warning (default 0.05)"},
		"LAGRUM_WORKERS":         {"LAGRUM_WORKERS", c.Workers, "Number of documents processed in parallel (default and 0 is number of CPUs)"},
	}
}

// Load returns defaults overridden by file (if name is not empty) and environment.
// If name is empty LAGRUM_CONFIG is used.
func Load(name string) (*Config, error) {
	c := Default()
	if name == "" {
		name = os.Getenv("LAGRUM_CONFIG")
	}

	if name != "" {
		data, e := os.ReadFile(name)
		if e != nil {
			return nil, lagrum.FormatError(FileError, "cannot read config: %s", e.Error())
		}
		if e = c.parse(name, data); e != nil {
			return nil, e
		}
	}

	if e := c.applyEnv(os.Getenv); e != nil {
		return nil, e
	}
	if e := c.Validate(); e != nil {
		return nil, e
	}
	return c, nil
}

func (c *Config) parse(name string, data []byte) error {
	e := yaml.Unmarshal(data, c)
	if e == nil {
		return nil
	}

	var te *yaml.TypeError
	if errors.As(e, &te) {
		return lagrum.FormatError(SyntaxError, "%s: %s", name, strings.Join(te.Errors, "; "))
	}
	return lagrum.FormatError(SyntaxError, "%s: %s", name, e.Error())
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if s := getenv("LAGRUM_GRAMMAR"); s != "" {
		c.Grammar = s
	}
	if s := getenv("LAGRUM_ENCODING"); s != "" {
		c.Encoding = s
	}

	if s := getenv("LAGRUM_DEBUG"); s != "" {
		b, e := strconv.ParseBool(s)
		if e != nil {
			return invalidValueError("LAGRUM_DEBUG", s)
		}
		c.Debug = b
	}

	if s := getenv("LAGRUM_WORKERS"); s != "" {
		i, e := strconv.Atoi(s)
		if e != nil {
			return invalidValueError("LAGRUM_WORKERS", s)
		}
		c.Workers = i
	}

	if s := getenv("LAGRUM_OTHER_THRESHOLD"); s != "" {
		f, e := strconv.ParseFloat(s, 64)
		if e != nil {
			return invalidValueError("LAGRUM_OTHER_THRESHOLD", s)
		}
		c.OtherThreshold = f
	}

	return nil
}

func invalidValueError(name, value string) error {
	return lagrum.FormatError(ValueError, "invalid %s value: %q", name, value)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return lagrum.FormatError(ValueError, "workers must not be negative, got %d", c.Workers)
	}
	if c.OtherThreshold < 0 || c.OtherThreshold > 1 {
		return lagrum.FormatError(ValueError, "other_threshold must be in 0..1 range, got %v", c.OtherThreshold)
	}
	return nil
}

// WorkerCount returns Workers or the number of CPUs if Workers is 0.
func (c *Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c *Config) String() string {
	return fmt.Sprintf("grammar=%q rule=%q encoding=%s nfc=%t workers=%d other_threshold=%v debug=%t",
		c.Grammar, c.Rule, c.Encoding, c.NFC, c.Workers, c.OtherThreshold, c.Debug)
}
