// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-amortization.
type Configuration struct {
	Loan    LoanConfig    `yaml:"loan"`
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
	Format         string `yaml:"format,omitempty"`         // pretty, csv, yaml
	CurrencySymbol string `yaml:"currencySymbol,omitempty"` // display symbol for pretty output
}

// LoanConfig describes the loan to amortize.
type LoanConfig struct {
	PurchasePrice float64  `yaml:"purchasePrice"`
	InterestRate  float64  `yaml:"interestRate"`
	DownPayment   float64  `yaml:"downPayment"`
	TermYears     int      `yaml:"termYears"`
	StartDate     string   `yaml:"startDate,omitempty"` // YYYY-MM-DD, defaults to today
	CustomPayment *float64 `yaml:"customPayment,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoanInput converts the loan section into amortization parameters. An empty
// start date means today.
func (conf *Configuration) LoanInput() (amortization.Input, error) {
	return conf.LoanInputWithFixedTime(time.Now())
}

// LoanInputWithFixedTime is LoanInput with an injectable current time.
func (conf *Configuration) LoanInputWithFixedTime(fixedTime time.Time) (amortization.Input, error) {
	loan := conf.Loan

	startDate := datetime.NewDate(fixedTime)
	if strings.TrimSpace(loan.StartDate) != "" {
		parsed, err := datetime.ParseDate(loan.StartDate)
		if err != nil {
			return amortization.Input{}, amortization.NewInvalidInputError("start_date", "%v", err)
		}
		startDate = parsed
	}

	in := amortization.Input{
		PurchasePrice: loan.PurchasePrice,
		InterestRate:  loan.InterestRate,
		DownPayment:   loan.DownPayment,
		TermYears:     loan.TermYears,
		StartDate:     startDate,
	}
	if loan.CustomPayment != nil {
		in = in.WithCustom(*loan.CustomPayment)
	}

	if err := amortization.Validate(in); err != nil {
		return amortization.Input{}, err
	}
	return in, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if strings.TrimSpace(conf.Loan.StartDate) == "" {
		warnings = append(warnings, "No loan start date configured, the schedule starts today")
	}

	in, err := conf.LoanInput()
	if err != nil {
		// Conversion errors surface from LoanInput.
		return warnings
	}
	return append(warnings, validation.ValidateLoan(in)...)
}
