package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, DateStylePostgres, o.GetDateStyle())
	assert.Equal(t, DateOrderMDY, o.GetDateOrder())
	assert.Equal(t, IntervalStylePostgres, o.GetIntervalStyle())
	assert.Equal(t, "UTC", o.GetTimezone())
	assert.Equal(t, 1e-12, o.GetEpsilon())
	assert.Equal(t, 1_000_000, o.GetInstantBudget())
}

func TestEmptyOptionsFallsBackToDefaults(t *testing.T) {
	o := EmptyOptions()
	assert.Equal(t, DateStylePostgres, o.GetDateStyle())
	assert.Equal(t, DateOrderMDY, o.GetDateOrder())
	assert.Equal(t, IntervalStylePostgres, o.GetIntervalStyle())
	assert.Equal(t, "UTC", o.GetTimezone())
	assert.Equal(t, 1e-12, o.GetEpsilon())
	assert.Equal(t, 1_000_000, o.GetInstantBudget())
}

func TestNilOptionsFallsBackToDefaults(t *testing.T) {
	var o *Options
	assert.Equal(t, DateStylePostgres, o.GetDateStyle())
	assert.Equal(t, "UTC", o.GetTimezone())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		wantErr bool
	}{
		{"empty is valid", EmptyOptions(), false},
		{"defaults are valid", DefaultOptions(), false},
		{"bad date style", &Options{DateStyle: ptr(DateStyle("Bogus"))}, true},
		{"bad date order", &Options{DateOrder: ptr(DateOrder("Bogus"))}, true},
		{"bad interval style", &Options{IntervalStyle: ptr(IntervalStyle("Bogus"))}, true},
		{"zero epsilon", &Options{Epsilon: ptr(0.0)}, true},
		{"negative epsilon", &Options{Epsilon: ptr(-1.0)}, true},
		{"zero instant budget", &Options{InstantBudget: ptr(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOptionsPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.json")
	data, err := json.Marshal(map[string]any{"timezone": "America/New_York"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	o, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", o.GetTimezone())
	// unset fields still fall back to defaults.
	assert.Equal(t, DateStylePostgres, o.GetDateStyle())
}

func TestLoadOptionsRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := LoadOptions(path)
	assert.Error(t, err)
}

func TestLoadOptionsRejectsInvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"date_style":"Bogus"}`), 0o644))

	_, err := LoadOptions(path)
	assert.Error(t, err)
}
