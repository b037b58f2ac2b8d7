package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// AreaConfig defines a named contiguous seat range
type AreaConfig struct {
	Name  string `yaml:"name" validate:"required"`
	First int    `yaml:"first" validate:"min=1"`
	Last  int    `yaml:"last" validate:"gtefield=First"`
}

// OverflowConfig defines when a queue spills into a secondary area
type OverflowConfig struct {
	Area       string `yaml:"area" validate:"required"`
	Threshold  int    `yaml:"threshold" validate:"min=0"`
	Minimum    int    `yaml:"minimum" validate:"min=0"`
	ScaledUpTo int    `yaml:"scaledUpTo" validate:"min=0"`
}

// QueueConfig defines the seating preferences of a queue
type QueueConfig struct {
	Name           string          `yaml:"name" validate:"required"`
	PreferredAreas []string        `yaml:"preferredAreas,omitempty" validate:"dive,required"`
	Overflow       *OverflowConfig `yaml:"overflow,omitempty"`
	Confined       bool            `yaml:"confined,omitempty"`
}

// ShiftCategoriesConfig holds the start-time boundaries, as "15:04"
type ShiftCategoriesConfig struct {
	MorningStart string `yaml:"morningStart"`
	MorningEnd   string `yaml:"morningEnd"`
	NightStart   string `yaml:"nightStart"`
}

// HeadcountConfig holds the headcount-dependent pool adjustments
type HeadcountConfig struct {
	LowHeadcountThreshold int    `yaml:"lowHeadcountThreshold" validate:"min=0"`
	LowHeadcountSeats     []int  `yaml:"lowHeadcountSeats,omitempty" validate:"dive,min=1"`
	OverflowArea          string `yaml:"overflowArea,omitempty"`
	OverflowAreaThreshold int    `yaml:"overflowAreaThreshold" validate:"min=0"`
}

// NestingConfig lists the areas nesting agents are placed in, in order
type NestingConfig struct {
	Areas []string `yaml:"areas,omitempty" validate:"dive,required"`
}

// SeatOverride reserves extra seats on the dates matched by an rrule
type SeatOverride struct {
	RRule         string `yaml:"rrule" validate:"required"`
	ReservedSeats []int  `yaml:"reservedSeats" validate:"required,min=1,dive,min=1"`
}

// SeatingConfig is the floor layout and allocation policy
type SeatingConfig struct {
	Areas               []AreaConfig          `yaml:"areas" validate:"required,min=1,dive"`
	ReservedSeats       []int                 `yaml:"reservedSeats,omitempty" validate:"dive,min=1"`
	Queues              []QueueConfig         `yaml:"queues" validate:"required,min=1,dive"`
	QueuePriority       []string              `yaml:"queuePriority,omitempty"`
	ShiftCategories     ShiftCategoriesConfig `yaml:"shiftCategories"`
	ReusableCutoff      string                `yaml:"reusableCutoff,omitempty"`
	OccupancyGrace      time.Duration         `yaml:"occupancyGrace,omitempty" validate:"min=0"`
	MaxOccupantsPerSeat int                   `yaml:"maxOccupantsPerSeat,omitempty" validate:"min=0"`
	Headcount           HeadcountConfig       `yaml:"headcount"`
	Nesting             NestingConfig         `yaml:"nesting"`
	Overrides           []SeatOverride        `yaml:"overrides,omitempty" validate:"dive"`
}

// PublishConfig names the Google Sheet that stored runs are published to
type PublishConfig struct {
	SheetID string `yaml:"sheetID" validate:"required"`
	Tab     string `yaml:"tab" validate:"required"`
}

// MetricsConfig enables pushing run metrics to a Prometheus Pushgateway
type MetricsConfig struct {
	PushGatewayURL string `yaml:"pushGatewayURL" validate:"required,url"`
	Job            string `yaml:"job,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Seating     SeatingConfig  `yaml:"seating"`
	DatabaseURL string         `yaml:"databaseURL,omitempty" validate:"omitempty,url"`
	Publish     *PublishConfig `yaml:"publish,omitempty"`
	Metrics     *MetricsConfig `yaml:"metrics,omitempty"`
}

// Defaults applied to omitted settings
const (
	DefaultMorningStart   = "05:00"
	DefaultMorningEnd     = "11:00"
	DefaultNightStart     = "14:00"
	DefaultReusableCutoff = "16:00"
	DefaultOccupancyGrace = 30 * time.Minute
	DefaultMetricsJob     = "seat_planner"
)

const configFileBase = "seat_planner_config"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads seat_planner_config.<env>.yaml, falling back to seat_planner_config.yaml.
// Each name is looked up in the current directory first, then the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("%s.%s.yaml", configFileBase, env))
	}
	names = append(names, configFileBase+".yaml")

	configPath, err := findFile(names...)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	s := &c.Seating
	if s.ShiftCategories.MorningStart == "" {
		s.ShiftCategories.MorningStart = DefaultMorningStart
	}
	if s.ShiftCategories.MorningEnd == "" {
		s.ShiftCategories.MorningEnd = DefaultMorningEnd
	}
	if s.ShiftCategories.NightStart == "" {
		s.ShiftCategories.NightStart = DefaultNightStart
	}
	if s.ReusableCutoff == "" {
		s.ReusableCutoff = DefaultReusableCutoff
	}
	if s.OccupancyGrace == 0 {
		s.OccupancyGrace = DefaultOccupancyGrace
	}
	if c.Metrics != nil && c.Metrics.Job == "" {
		c.Metrics.Job = DefaultMetricsJob
	}
}

// Validate runs struct validation, checks rrule syntax and builds the engine
// configuration once to surface layout and policy errors
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.Seating.Overrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in overrides[%d]: %w", i, err)
		}
	}

	if _, err := cfg.Seating.EngineConfig(nil, 1, nil); err != nil {
		return fmt.Errorf("invalid seating config: %w", err)
	}

	return nil
}

// findFile returns the first of names found in the current directory, then in the
// user's home directory
func findFile(names ...string) (string, error) {
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		homePath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homePath); err == nil {
			return homePath, nil
		}
	}

	return "", fmt.Errorf("none of %v found in current directory or home directory", names)
}
