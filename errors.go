package strata

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	// ErrPaintOrder reports a physical model layer painted after an
	// overlapping one with a higher cumulative elevation.
	ErrPaintOrder = errors.New("strata: painting order is out of order with respect to elevation")

	// ErrSingularTransform reports a follower whose ancestor chain cannot be
	// inverted, so it could not be positioned relative to its leader.
	ErrSingularTransform = errors.New("strata: follower transform is not invertible")
)

// ElevationConflictError describes one pair of conflicting physical model
// layers. It wraps ErrPaintOrder.
type ElevationConflictError struct {
	// Predecessor was painted first and sits higher.
	Predecessor *PhysicalModelLayer
	// Layer was painted later and sits lower.
	Layer *PhysicalModelLayer

	PredecessorElevation float64
	LayerElevation       float64
}

// Error describes both layers and their elevations.
func (e *ElevationConflictError) Error() string {
	return fmt.Sprintf("%v: %s (elevation %g) painted after %s (elevation %g)",
		ErrPaintOrder, e.Layer, e.LayerElevation, e.Predecessor, e.PredecessorElevation)
}

// Unwrap returns ErrPaintOrder.
func (e *ElevationConflictError) Unwrap() error { return ErrPaintOrder }

// ErrorDetails is a structured diagnostic handed to the ErrorReporter.
type ErrorDetails struct {
	Err         error
	Context     string
	Information []string
}

// String formats the error, its context and one indented line per piece of information.
func (d ErrorDetails) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v", d.Err)
	if d.Context != "" {
		fmt.Fprintf(&sb, " (%s)", d.Context)
	}
	for _, line := range d.Information {
		sb.WriteString("\n  ")
		sb.WriteString(line)
	}
	return sb.String()
}

// ErrorReporter receives recoverable diagnostics produced while building a
// scene. Reports never interrupt the frame.
type ErrorReporter interface {
	ReportError(details ErrorDetails)
}

// ErrorReporterFunc adapts a function to the ErrorReporter interface.
type ErrorReporterFunc func(details ErrorDetails)

// ReportError calls f(details).
func (f ErrorReporterFunc) ReportError(details ErrorDetails) { f(details) }

type logReporter struct{}

func (logReporter) ReportError(d ErrorDetails) {
	Logger().Error(d.Err.Error(), "context", d.Context, "information", d.Information)
}

type reporterBox struct{ r ErrorReporter }

var reporterPtr atomic.Pointer[reporterBox]

func init() {
	reporterPtr.Store(&reporterBox{logReporter{}})
}

// SetErrorReporter installs r as the diagnostics sink. Passing nil restores
// the default reporter, which logs at error level through Logger.
func SetErrorReporter(r ErrorReporter) {
	if r == nil {
		r = logReporter{}
	}
	reporterPtr.Store(&reporterBox{r})
}

// ReportError delivers details to the installed ErrorReporter.
func ReportError(details ErrorDetails) {
	reporterPtr.Load().r.ReportError(details)
}
