// Package config holds the settings of the petri tools. Values come from
// the defaults, then a YAML file, then a .env file, then PETRI_* environment
// variables, each layer overriding the one before.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/caser"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "PETRI_"

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Engine struct {
	// Seed fixes the random choices of TriggerRandom and enterprise names.
	// 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

type Industry struct {
	AllowSelfLoops bool `yaml:"allowSelfLoops"`
}

type UI struct {
	MaxLabelSize         int     `yaml:"maxLabelSize"`
	LabelDistanceMin     float64 `yaml:"labelDistanceMin"`
	LabelDistanceMax     float64 `yaml:"labelDistanceMax"`
	MessageArrowDistance float64 `yaml:"messageArrowDistance"`
	MessageArrowLength   float64 `yaml:"messageArrowLength"`
}

type Config struct {
	Log      Log      `yaml:"log"`
	Engine   Engine   `yaml:"engine"`
	Industry Industry `yaml:"industry"`
	UI       UI       `yaml:"ui"`
}

func Default() *Config {
	return &Config{
		Log: Log{Level: "info"},
		UI: UI{
			MaxLabelSize:         30,
			LabelDistanceMin:     10,
			LabelDistanceMax:     100,
			MessageArrowDistance: 20,
			MessageArrowLength:   30,
		},
	}
}

// Load reads the YAML file at path, if path is not empty, then the given
// .env files (".env" when none are given; missing files are skipped), then
// the process environment.
func Load(path string, dotenv ...string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	vars, err := godotenv.Read(dotenv...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		vars = map[string]string{}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
	if err := c.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

type setting struct {
	get func() string
	set func(string) error
}

func (c *Config) settings() map[string]setting {
	return map[string]setting{
		"log.level":               {func() string { return c.Log.Level }, str(&c.Log.Level)},
		"log.development":         {func() string { return strconv.FormatBool(c.Log.Development) }, boolean(&c.Log.Development)},
		"engine.seed":             {func() string { return strconv.FormatInt(c.Engine.Seed, 10) }, integer64(&c.Engine.Seed)},
		"industry.allowSelfLoops": {func() string { return strconv.FormatBool(c.Industry.AllowSelfLoops) }, boolean(&c.Industry.AllowSelfLoops)},
		"ui.maxLabelSize":         {func() string { return strconv.Itoa(c.UI.MaxLabelSize) }, integer(&c.UI.MaxLabelSize)},
		"ui.labelDistanceMin":     {func() string { return formatFloat(c.UI.LabelDistanceMin) }, float(&c.UI.LabelDistanceMin)},
		"ui.labelDistanceMax":     {func() string { return formatFloat(c.UI.LabelDistanceMax) }, float(&c.UI.LabelDistanceMax)},
		"ui.messageArrowDistance": {func() string { return formatFloat(c.UI.MessageArrowDistance) }, float(&c.UI.MessageArrowDistance)},
		"ui.messageArrowLength":   {func() string { return formatFloat(c.UI.MessageArrowLength) }, float(&c.UI.MessageArrowLength)},
	}
}

func str(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func boolean(dst *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

func integer(dst *int) func(string) error {
	return func(v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = i
		return nil
	}
}

func integer64(dst *int64) func(string) error {
	return func(v string) error {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*dst = i
		return nil
	}
}

func float(dst *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Keys lists every setting name in sorted order.
func Keys() []string {
	keys := make([]string, 0)
	for k := range Default().settings() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value into the setting named key.
func (c *Config) Set(key, value string) error {
	s, ok := c.settings()[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := s.set(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, key, value, err)
	}
	return nil
}

func (c *Config) Get(key string) (string, error) {
	s, ok := c.settings()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return s.get(), nil
}

// EnvName maps a setting name to its environment variable:
// ui.maxLabelSize becomes PETRI_UI_MAX_LABEL_SIZE.
func EnvName(key string) string {
	return EnvPrefix + caser.New(key).ScreamingSnakeCase()
}

// ApplyEnv overrides every setting whose variable lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range Keys() {
		if v, ok := lookup(EnvName(key)); ok {
			if err := c.Set(key, v); err != nil {
				return fmt.Errorf("%s: %w", EnvName(key), err)
			}
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.UI.MaxLabelSize <= 0 {
		return fmt.Errorf("%w: ui.maxLabelSize must be positive", ErrInvalidValue)
	}
	if c.UI.LabelDistanceMin > c.UI.LabelDistanceMax {
		return fmt.Errorf("%w: ui.labelDistanceMin above ui.labelDistanceMax", ErrInvalidValue)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	return nil
}

// Logger builds the zap logger described by the log settings.
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

// Chooser returns the random source for nets and industries.
func (c *Config) Chooser() petri.Chooser {
	seed := c.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
