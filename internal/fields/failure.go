package fields

import (
	"fmt"

	"github.com/chehxing/docx-to-excel/internal/common"
)

// Reason classifies why a strategy produced no value.
type Reason string

const (
	ReasonMalformedLocation Reason = "malformed_location"
	ReasonMissingPattern    Reason = "missing_pattern"
	ReasonInvalidPattern    Reason = "invalid_pattern"
	ReasonNoMatch           Reason = "no_match"
	ReasonOutOfBounds       Reason = "out_of_bounds"
	ReasonEmptyGroup        Reason = "empty_group"
	ReasonTimeout           Reason = "timeout"
	ReasonPanic             Reason = "panic"
)

// ExtractionFailure is the only error a strategy returns. The engine turns
// every failure into the rule's default.
type ExtractionFailure struct {
	Reason Reason
	Detail string
	Cause  error
}

func (f *ExtractionFailure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Reason, f.Detail, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Reason, f.Detail)
}

func (f *ExtractionFailure) Unwrap() error { return f.Cause }

func (f *ExtractionFailure) Is(target error) bool { return target == common.ErrExtraction }

// Fault reports failures that point at a broken rule rather than at a
// document that simply lacks the value.
func (f *ExtractionFailure) Fault() bool {
	switch f.Reason {
	case ReasonMalformedLocation, ReasonInvalidPattern, ReasonTimeout, ReasonPanic:
		return true
	}
	return false
}

func fail(reason Reason, cause error, format string, args ...any) *ExtractionFailure {
	return &ExtractionFailure{Reason: reason, Detail: fmt.Sprintf(format, args...), Cause: cause}
}
