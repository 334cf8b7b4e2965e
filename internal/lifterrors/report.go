package lifterrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Schema is the stable schema identifier stamped on every Report,
// mirroring the teacher's "ailang.error/v1" convention.
const Schema = "lambdalift.error/v1"

// Report is the structured description of an invariant violation.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as a Go error so it survives errors.As
// unwrapping even after being raised via panic and recovered.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown lambda-lift invariant violation"
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// WrapReport wraps a Report as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a Report for code with a formatted message and optional
// structured data.
func New(code, format string, data map[string]any, args ...any) *Report {
	info, ok := Lookup(code)
	phase := "lift"
	if ok {
		phase = info.Phase
	}
	return &Report{
		Schema:  Schema,
		Code:    code,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Data:    data,
	}
}

// ToJSON renders the report as indented JSON.
func (r *Report) ToJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Invariant panics with a Report wrapped as an error. Every invariant
// violation this package names (spec.md §7) is a programmer error that
// must surface as "an immediate, loud failure", not a recoverable
// condition returned to the caller.
func Invariant(code, format string, args ...any) {
	panic(WrapReport(New(code, format, nil, args...)))
}
