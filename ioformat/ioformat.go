// Package ioformat implements the textual representation spec.md §6
// defines: "value@timestamp" for instants, "{...}" for sets, "[...]"/"(...)"
// for sequences with inclusivity bounds, and an "Interp=Step;" prefix for
// step-interpolated sequences over a base type whose default is linear.
// Parse(Print(x)) reproduces x after canonicalization (spec.md §6).
package ioformat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/banshee-data/mobitemporal/basetype"
	"github.com/banshee-data/mobitemporal/internal/config"
	"github.com/banshee-data/mobitemporal/internal/engine"
	"github.com/banshee-data/mobitemporal/ttime"
	"github.com/banshee-data/mobitemporal/ttype"
)

// ErrInvalidTextInput is returned when a literal cannot be parsed
// (spec.md §7).
var ErrInvalidTextInput = errors.New("ioformat: invalid text input")

// Dialect bundles the process-wide options spec.md §6 names (DateStyle,
// DateOrder, Timezone) with the engine handle whose zone table resolves
// them, so textual I/O honors the caller's configured dialect instead of
// a single hardcoded layout. The zero value is the Postgres/MDY/UTC
// default: config.Options' Get* accessors already fall back safely on a
// nil receiver, and a nil handle limits timezone resolution to UTC.
type Dialect struct {
	Options *config.Options
	Handle  *engine.Handle
}

// NewDialect builds a Dialect from a process handle and options.
func NewDialect(h *engine.Handle, opts *config.Options) Dialect {
	return Dialect{Options: opts, Handle: h}
}

// layout returns the time.Format layout for the dialect's DateStyle,
// consulting DateOrder to disambiguate DateStyleSQL's field order
// (spec.md §6).
func (d Dialect) layout() string {
	switch d.Options.GetDateStyle() {
	case config.DateStyleISO, config.DateStyleXSD:
		return "2006-01-02T15:04:05.999999Z07:00"
	case config.DateStyleGerman:
		return "02.01.2006 15:04:05.999999"
	case config.DateStyleSQL:
		switch d.Options.GetDateOrder() {
		case config.DateOrderDMY:
			return "02/01/2006 15:04:05.999999"
		case config.DateOrderYMD:
			return "2006/01/02 15:04:05.999999"
		default:
			return "01/02/2006 15:04:05.999999"
		}
	default:
		return "2006-01-02 15:04:05.999999"
	}
}

// zone resolves the dialect's configured Timezone via the handle's cached
// ZoneTable. Returns time.UTC when no handle is attached or the name is
// unset/UTC, so a zero-value Dialect never touches the tz database.
func (d Dialect) zone() *time.Location {
	name := d.Options.GetTimezone()
	if name == "" || name == "UTC" || d.Handle == nil {
		return time.UTC
	}
	loc, err := d.Handle.Zones.Load(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (d Dialect) formatTime(t ttime.Timestamp) string {
	return t.Time().In(d.zone()).Format(d.layout())
}

func (d Dialect) parseTime(s string) (ttime.Timestamp, error) {
	tm, err := time.ParseInLocation(d.layout(), s, d.zone())
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q: %v", ErrInvalidTextInput, s, err)
	}
	return ttime.FromTime(tm.UTC()), nil
}

func formatValue[B any](ops *basetype.Ops[B], v B) string {
	if ops.Format != nil {
		return ops.Format(v)
	}
	return fmt.Sprint(v)
}

func parseValue[B any](ops *basetype.Ops[B], s string) (B, error) {
	if ops.Parse == nil {
		var zero B
		return zero, fmt.Errorf("%w: base type %s has no text parser", ErrInvalidTextInput, ops.Name)
	}
	v, err := ops.Parse(s)
	if err != nil {
		var zero B
		return zero, fmt.Errorf("%w: value %q: %v", ErrInvalidTextInput, s, err)
	}
	return v, nil
}

// PrintInstant renders "value@timestamp" under dialect d.
func PrintInstant[B any](inst ttype.TInstant[B], d Dialect) string {
	ops := basetype.MustFor[B]()
	return formatValue(ops, inst.Value) + "@" + d.formatTime(inst.Time)
}

// ParseInstant is PrintInstant's inverse.
func ParseInstant[B any](s string, d Dialect) (ttype.TInstant[B], error) {
	ops := basetype.MustFor[B]()
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return ttype.TInstant[B]{}, fmt.Errorf("%w: instant %q missing '@'", ErrInvalidTextInput, s)
	}
	v, err := parseValue(ops, s[:at])
	if err != nil {
		return ttype.TInstant[B]{}, err
	}
	t, err := d.parseTime(s[at+1:])
	if err != nil {
		return ttype.TInstant[B]{}, err
	}
	return ttype.NewInstant(v, t), nil
}

// PrintInstantSet renders "{i1, i2, ...}".
func PrintInstantSet[B any](set ttype.TInstantSet[B], d Dialect) string {
	parts := make([]string, set.NumInstants())
	for i := range parts {
		parts[i] = PrintInstant(set.Instant(i), d)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseInstantSet is PrintInstantSet's inverse.
func ParseInstantSet[B any](s string, d Dialect) (ttype.TInstantSet[B], error) {
	body, err := unwrap(s, '{', '}')
	if err != nil {
		return ttype.TInstantSet[B]{}, err
	}
	var instants []ttype.TInstant[B]
	for _, part := range splitTopLevel(body) {
		inst, err := ParseInstant[B](strings.TrimSpace(part), d)
		if err != nil {
			return ttype.TInstantSet[B]{}, err
		}
		instants = append(instants, inst)
	}
	return ttype.NewInstantSet(instants)
}

// PrintSequence renders a sequence with its bounds and, when the base type
// defaults to Linear but this sequence is Step, the "Interp=Step;" prefix
// (spec.md §6; Open Question decision: the prefix is never re-emitted for
// base types that have no Linear mode, since Step is already their only
// option there).
func PrintSequence[B any](seq ttype.TSequence[B], d Dialect) string {
	ops := basetype.MustFor[B]()
	var b strings.Builder
	if ops.Linear && seq.Interp == ttype.Step {
		b.WriteString("Interp=Step;")
	}
	if seq.LowerInc {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	n := seq.NumInstants()
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(PrintInstant(seq.Instant(i), d))
	}
	if seq.UpperInc {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// ParseSequence is PrintSequence's inverse. A leading "Interp=Step;" or
// (legacy) "Interp=Stepwise;" prefix is recognized but never required.
func ParseSequence[B any](s string, d Dialect) (ttype.TSequence[B], error) {
	interp := ttype.Linear
	if rest, ok := stripPrefix(s, "Interp=Step;"); ok {
		s, interp = rest, ttype.Step
	} else if rest, ok := stripPrefix(s, "Interp=Stepwise;"); ok {
		s, interp = rest, ttype.Step
	}
	if len(s) < 2 {
		return ttype.TSequence[B]{}, fmt.Errorf("%w: sequence %q too short", ErrInvalidTextInput, s)
	}
	var lowerInc bool
	switch s[0] {
	case '[':
		lowerInc = true
	case '(':
		lowerInc = false
	default:
		return ttype.TSequence[B]{}, fmt.Errorf("%w: sequence %q missing lower bound marker", ErrInvalidTextInput, s)
	}
	var upperInc bool
	switch s[len(s)-1] {
	case ']':
		upperInc = true
	case ')':
		upperInc = false
	default:
		return ttype.TSequence[B]{}, fmt.Errorf("%w: sequence %q missing upper bound marker", ErrInvalidTextInput, s)
	}
	body := s[1 : len(s)-1]
	var instants []ttype.TInstant[B]
	for _, part := range splitTopLevel(body) {
		inst, err := ParseInstant[B](strings.TrimSpace(part), d)
		if err != nil {
			return ttype.TSequence[B]{}, err
		}
		instants = append(instants, inst)
	}
	ops := basetype.MustFor[B]()
	if !ops.Linear {
		interp = ttype.Step
	}
	return ttype.NewSequence(instants, lowerInc, upperInc, interp)
}

// PrintSequenceSet renders "{seq1, seq2, ...}".
func PrintSequenceSet[B any](set ttype.TSequenceSet[B], d Dialect) string {
	parts := make([]string, set.NumSequences())
	for i := range parts {
		parts[i] = PrintSequence(set.Sequence(i), d)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseSequenceSet is PrintSequenceSet's inverse.
func ParseSequenceSet[B any](s string, d Dialect) (ttype.TSequenceSet[B], error) {
	body, err := unwrap(s, '{', '}')
	if err != nil {
		return ttype.TSequenceSet[B]{}, err
	}
	var seqs []ttype.TSequence[B]
	for _, part := range splitTopLevel(body) {
		seq, err := ParseSequence[B](strings.TrimSpace(part), d)
		if err != nil {
			return ttype.TSequenceSet[B]{}, err
		}
		seqs = append(seqs, seq)
	}
	return ttype.NewSequenceSet(seqs)
}

func unwrap(s string, open, close byte) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return "", fmt.Errorf("%w: %q missing %c...%c", ErrInvalidTextInput, s, open, close)
	}
	return s[1 : len(s)-1], nil
}

func stripPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// splitTopLevel splits a comma-separated list, respecting '[', '(', '{'
// nesting so an instant's own value text (e.g. a point literal) containing
// commas isn't split.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}
