// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning goals into engine
// inputs.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/savings"
	"github.com/iwvelando/save-smarter/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// DefaultDepositPeriod applies when neither a goal nor common sets one.
const DefaultDepositPeriod = "daily"

// Configuration holds all configuration for save-smarter.
type Configuration struct {
	Common  Common        `yaml:"common,omitempty"`
	Goals   []Goal        `yaml:"goals,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Common holds defaults shared by every goal. ReferenceDate pins "today" for
// reproducible projections.
type Common struct {
	ReferenceDate  string   `yaml:"referenceDate,omitempty"`
	CurrentBalance *float64 `yaml:"currentBalance,omitempty"`
	InterestRate   *float64 `yaml:"interestRate,omitempty"`
	DepositPeriod  string   `yaml:"depositPeriod,omitempty"`
}

// Goal holds one savings goal. Unset amounts and period fall back to Common.
type Goal struct {
	Name           string   `yaml:"name"`
	Active         bool     `yaml:"active"`
	CurrentBalance *float64 `yaml:"currentBalance,omitempty"`
	InterestRate   *float64 `yaml:"interestRate,omitempty"`
	TargetValue    *float64 `yaml:"targetValue,omitempty"`
	StartDate      string   `yaml:"startDate,omitempty"`
	TargetDate     string   `yaml:"targetDate,omitempty"`
	DepositPeriod  string   `yaml:"depositPeriod,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// envKeys can be set from SAVESMARTER_* variables even when the file omits
// them, e.g. SAVESMARTER_OUTPUT_FORMAT or SAVESMARTER_COMMON_REFERENCEDATE.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
	"common.referenceDate",
	"common.currentBalance",
	"common.interestRate",
	"common.depositPeriod",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ReferenceDate returns the configured reference date, or the calendar date of
// now when none is configured.
func (conf *Configuration) ReferenceDate(now time.Time) (time.Time, error) {
	if strings.TrimSpace(conf.Common.ReferenceDate) == "" {
		return datetime.Normalize(now), nil
	}
	t, err := datetime.ParseDate(conf.Common.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("common referenceDate: %w", err)
	}
	return t, nil
}

// Resolve fills unset goal fields from common.
func (goal Goal) Resolve(common Common) Goal {
	resolved := goal
	if resolved.CurrentBalance == nil {
		resolved.CurrentBalance = common.CurrentBalance
	}
	if resolved.InterestRate == nil {
		resolved.InterestRate = common.InterestRate
	}
	if strings.TrimSpace(resolved.DepositPeriod) == "" {
		resolved.DepositPeriod = common.DepositPeriod
	}
	if strings.TrimSpace(resolved.DepositPeriod) == "" {
		resolved.DepositPeriod = DefaultDepositPeriod
	}
	return resolved
}

// ToInput validates a resolved goal against today and converts it into a
// projection input.
func (goal Goal) ToInput(today time.Time) (savings.Input, error) {
	if err := validation.RequireFields(goal.CurrentBalance, goal.InterestRate, goal.TargetValue); err != nil {
		return savings.Input{}, err
	}
	if err := validation.ValidateAmounts(*goal.CurrentBalance, *goal.InterestRate, *goal.TargetValue); err != nil {
		return savings.Input{}, err
	}

	period, err := savings.ParseDepositPeriod(goal.DepositPeriod)
	if err != nil {
		return savings.Input{}, err
	}

	startDate, err := datetime.ParseDate(goal.StartDate)
	if err != nil {
		return savings.Input{}, fmt.Errorf("startDate: %w", err)
	}
	targetDate, err := datetime.ParseDate(goal.TargetDate)
	if err != nil {
		return savings.Input{}, fmt.Errorf("targetDate: %w", err)
	}
	if err := validation.ValidateDateWindow(today, startDate, targetDate); err != nil {
		return savings.Input{}, err
	}

	return savings.Input{
		CurrentBalance: *goal.CurrentBalance,
		InterestRate:   *goal.InterestRate,
		TargetValue:    *goal.TargetValue,
		StartDate:      startDate,
		TargetDate:     targetDate,
		DepositPeriod:  period,
	}, nil
}

// GoalInput resolves goal against the common defaults and converts it.
func (conf *Configuration) GoalInput(goal Goal, today time.Time) (savings.Input, error) {
	input, err := goal.Resolve(conf.Common).ToInput(today)
	if err != nil {
		return savings.Input{}, fmt.Errorf("goal %s: %w", goal.Name, err)
	}
	return input, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration(today time.Time) []string {
	validator := validation.ConfigValidator{ReferenceDate: today}
	for _, goal := range conf.Goals {
		resolved := goal.Resolve(conf.Common)
		targetDate, _ := datetime.ParseDate(resolved.TargetDate)
		validator.Goals = append(validator.Goals, validation.GoalConfig{
			Name:           resolved.Name,
			Active:         resolved.Active,
			CurrentBalance: resolved.CurrentBalance,
			TargetValue:    resolved.TargetValue,
			TargetDate:     targetDate,
		})
	}
	return validator.ValidateAll()
}
