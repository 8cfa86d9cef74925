package faults

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindMissingInput  Kind = "MissingInput"
	KindExtraction    Kind = "ExtractionError"
	KindIndexing      Kind = "IndexingError"
	KindSynthesis     Kind = "SynthesisError"
	KindConfiguration Kind = "ConfigurationError"
)

// Fault carries an error kind, the pipeline stage that produced it and a
// user-safe message. The wrapped cause is for logs only and must never be
// written to an HTTP response.
type Fault struct {
	Kind    Kind
	Stage   string
	Message string
	cause   error
}

func New(kind Kind, stage string, message string) *Fault {
	return &Fault{Kind: kind, Stage: stage, Message: message}
}

func Wrap(kind Kind, stage string, message string, cause error) *Fault {
	return &Fault{Kind: kind, Stage: stage, Message: message, cause: cause}
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s at %s: %v", f.Kind, f.Stage, f.cause)
	}
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Stage, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.cause
}

// KindOf returns the kind of the outermost Fault in err's chain, or the empty
// string when err is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// SafeMessage returns the user-facing message for err. Unknown errors get a
// generic message so provider fault detail never leaks to the caller.
func SafeMessage(err error) string {
	var f *Fault
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return "Internal Server Error"
}

// StageOf returns the stage tag of the outermost Fault, or "unknown".
func StageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) && f.Stage != "" {
		return f.Stage
	}
	return "unknown"
}
