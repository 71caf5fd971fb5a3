package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Diagnostic codes.
const (
	CodeKeyCollision     = "key-collision"
	CodeKeyDisambiguated = "key-disambiguated"
	CodeEmptyResource    = "empty-resource"
	CodeNoResources      = "no-resources"
)

// Diagnostics holds all diagnostic information from planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Key identifies which resource key this relates to (if any).
	Key string
	// Paths lists the resource paths involved (if any).
	Paths []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, key string, paths ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Key:      key,
		Paths:    paths,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, key string, paths ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Key:      key,
		Paths:    paths,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, key string, paths ...string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Key:      key,
		Paths:    paths,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Log writes every diagnostic to logger at its severity's level.
func (d *Diagnostics) Log(logger *slog.Logger) {
	for _, diag := range d.All() {
		attrs := []any{slog.String("code", diag.Code)}
		if diag.Key != "" {
			attrs = append(attrs, slog.String("key", diag.Key))
		}

		if len(diag.Paths) > 0 {
			attrs = append(attrs, slog.Any("paths", diag.Paths))
		}

		logger.Log(context.Background(), diag.Severity.Level(), diag.Message, attrs...)
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Key != "" {
		msg = d.Key + ": " + msg
	}

	if len(d.Paths) > 0 {
		msg += " (" + strings.Join(d.Paths, ", ") + ")"
	}

	return msg
}
