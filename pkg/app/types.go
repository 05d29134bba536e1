package app

import (
	"errors"
	"fmt"
	"time"
)

// RecordTarget identifies the Catalog record a command operates on:
// either a slash-separated path resolved through the resolver, or a raw
// CNID for addressing a record directly (useful once a CNID has already
// been printed by a prior `stat` or `read` invocation).
type RecordTarget struct {
	Path string
	CNID uint32
}

// Validate ensures the target names exactly one addressing scheme.
func (rt *RecordTarget) Validate() error {
	if rt.Path != "" && rt.CNID != 0 {
		return errors.New("cannot specify both a path and a cnid")
	}
	if rt.Path == "" && rt.CNID == 0 {
		return errors.New("must specify either a path or a cnid")
	}
	return nil
}

// IsEmpty returns true if no target is specified.
func (rt *RecordTarget) IsEmpty() bool {
	return rt.Path == "" && rt.CNID == 0
}

// String returns a string representation of the record target.
func (rt *RecordTarget) String() string {
	if rt.Path != "" {
		return "Path: " + rt.Path
	}
	if rt.CNID != 0 {
		return fmt.Sprintf("CNID: %d", rt.CNID)
	}
	return "<unset>"
}

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   int64
	Total       int64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int((p.Completed * 100) / p.Total)
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime == 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// ETA estimates time to completion
func (p *ProgressUpdate) ETA() time.Duration {
	if p.Completed == 0 || p.Total == 0 {
		return 0
	}
	rate := p.Rate()
	if rate == 0 {
		return 0
	}
	remaining := p.Total - p.Completed
	return time.Duration(float64(remaining)/rate) * time.Second
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeContainerAccess = "CONTAINER_ACCESS"
	ErrCodeVolumeNotFound  = "VOLUME_NOT_FOUND"
	ErrCodePermission      = "PERMISSION_DENIED"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeNotImplemented  = "NOT_IMPLEMENTED"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
