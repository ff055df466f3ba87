// Package config holds the process-wide options accepted by the temporal
// core: the textual-representation dialect (spec.md §6) and the numeric
// tolerances/budgets the lifting and crossover engines run under.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DateStyle selects the date literal dialect used by ioformat parsing/printing.
type DateStyle string

const (
	DateStylePostgres DateStyle = "Postgres"
	DateStyleISO      DateStyle = "ISO"
	DateStyleSQL      DateStyle = "SQL"
	DateStyleGerman   DateStyle = "German"
	DateStyleXSD      DateStyle = "XSD"
)

// DateOrder selects how an ambiguous three-field date literal is read.
type DateOrder string

const (
	DateOrderYMD DateOrder = "YMD"
	DateOrderDMY DateOrder = "DMY"
	DateOrderMDY DateOrder = "MDY"
)

// IntervalStyle selects how Interval values are printed.
type IntervalStyle string

const (
	IntervalStylePostgres        IntervalStyle = "Postgres"
	IntervalStylePostgresVerbose IntervalStyle = "PostgresVerbose"
	IntervalStyleSQLStandard     IntervalStyle = "SqlStandard"
	IntervalStyleISO8601         IntervalStyle = "Iso8601"
)

func (s DateStyle) valid() bool {
	switch s {
	case DateStylePostgres, DateStyleISO, DateStyleSQL, DateStyleGerman, DateStyleXSD:
		return true
	}
	return false
}

func (o DateOrder) valid() bool {
	switch o {
	case DateOrderYMD, DateOrderDMY, DateOrderMDY:
		return true
	}
	return false
}

func (s IntervalStyle) valid() bool {
	switch s {
	case IntervalStylePostgres, IntervalStylePostgresVerbose, IntervalStyleSQLStandard, IntervalStyleISO8601:
		return true
	}
	return false
}

// Options is the root configuration for the core's process-wide behavior.
// Every field is optional; Get* accessors fall back to the documented
// default so partial JSON configs (or a zero-value Options{}) are safe.
type Options struct {
	DateStyle     *DateStyle     `json:"date_style,omitempty"`
	DateOrder     *DateOrder     `json:"date_order,omitempty"`
	IntervalStyle *IntervalStyle `json:"interval_style,omitempty"`
	Timezone      *string        `json:"timezone,omitempty"`

	// Epsilon is the tolerance used for near-zero/collinearity checks in
	// crossover solving (spec.md §9). It never leaks into equality of
	// base values the caller inserted.
	Epsilon *float64 `json:"epsilon,omitempty"`

	// InstantBudget bounds how many instants a single crossover-insertion
	// operation may materialize before it fails TooComplex (spec.md §5, §7).
	InstantBudget *int `json:"instant_budget,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// DefaultOptions returns an Options with every field explicitly set to its
// documented default.
func DefaultOptions() *Options {
	return &Options{
		DateStyle:     ptr(DateStylePostgres),
		DateOrder:     ptr(DateOrderMDY),
		IntervalStyle: ptr(IntervalStylePostgres),
		Timezone:      ptr("UTC"),
		Epsilon:       ptr(1e-12),
		InstantBudget: ptr(1_000_000),
	}
}

// EmptyOptions returns an Options with every field nil. Combine with
// Get* accessors, which fill in defaults on demand.
func EmptyOptions() *Options {
	return &Options{}
}

// LoadOptions reads a partial Options from a JSON file. Fields omitted from
// the file retain their default value when read through the Get* accessors.
func LoadOptions(path string) (*Options, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	opts := EmptyOptions()
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}

// Validate checks that any set fields hold a recognized value.
func (o *Options) Validate() error {
	if o.DateStyle != nil && !o.DateStyle.valid() {
		return fmt.Errorf("invalid date_style %q", *o.DateStyle)
	}
	if o.DateOrder != nil && !o.DateOrder.valid() {
		return fmt.Errorf("invalid date_order %q", *o.DateOrder)
	}
	if o.IntervalStyle != nil && !o.IntervalStyle.valid() {
		return fmt.Errorf("invalid interval_style %q", *o.IntervalStyle)
	}
	if o.Epsilon != nil && *o.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", *o.Epsilon)
	}
	if o.InstantBudget != nil && *o.InstantBudget <= 0 {
		return fmt.Errorf("instant_budget must be positive, got %d", *o.InstantBudget)
	}
	return nil
}

// GetDateStyle returns the configured DateStyle or DateStylePostgres.
func (o *Options) GetDateStyle() DateStyle {
	if o == nil || o.DateStyle == nil {
		return DateStylePostgres
	}
	return *o.DateStyle
}

// GetDateOrder returns the configured DateOrder or DateOrderMDY.
func (o *Options) GetDateOrder() DateOrder {
	if o == nil || o.DateOrder == nil {
		return DateOrderMDY
	}
	return *o.DateOrder
}

// GetIntervalStyle returns the configured IntervalStyle or IntervalStylePostgres.
func (o *Options) GetIntervalStyle() IntervalStyle {
	if o == nil || o.IntervalStyle == nil {
		return IntervalStylePostgres
	}
	return *o.IntervalStyle
}

// GetTimezone returns the configured Timezone name, or "UTC".
func (o *Options) GetTimezone() string {
	if o == nil || o.Timezone == nil || *o.Timezone == "" {
		return "UTC"
	}
	return *o.Timezone
}

// GetEpsilon returns the configured tolerance, or 1e-12.
func (o *Options) GetEpsilon() float64 {
	if o == nil || o.Epsilon == nil {
		return 1e-12
	}
	return *o.Epsilon
}

// GetInstantBudget returns the configured crossover-insertion budget, or 1,000,000.
func (o *Options) GetInstantBudget() int {
	if o == nil || o.InstantBudget == nil {
		return 1_000_000
	}
	return *o.InstantBudget
}
