// Package errs defines the typed error kinds shared by the parser and the
// pipeline stages, following the status codes used throughout the external
// decoder/scaler/DPU collaborators.
package errs

import (
	"github.com/pkg/errors"
)

// Kind classifies a stage or parser outcome so callers can branch on
// control flow without string matching.
type Kind int32

const (
	// KindSuccess is a normal, successful return.
	KindSuccess Kind = iota
	// KindInvalidArgs means a caller passed a malformed argument.
	KindInvalidArgs
	// KindAllocError means a buffer or memory allocation failed.
	KindAllocError
	// KindNeedMoreData means the caller must supply more input before
	// progress can be made; this is normal control flow, not a failure.
	KindNeedMoreData
	// KindSendAgain means an external handle asked to be resubmitted;
	// this is normal control flow, not a failure.
	KindSendAgain
	// KindEOS is a normal terminal return.
	KindEOS
	// KindError is a generic I/O or external-collaborator failure.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalidArgs:
		return "invalid_args"
	case KindAllocError:
		return "alloc_error"
	case KindNeedMoreData:
		return "need_moredata"
	case KindSendAgain:
		return "send_again"
	case KindEOS:
		return "eos"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Error is the pipeline's typed error, carrying a Kind alongside a message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New creates a typed Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf extracts the Kind from err, returning KindError for any error that
// isn't one of ours and KindSuccess for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindSuccess
	}
	var e *Error
	if !errors.As(err, &e) {
		return KindError
	}
	return e.Kind
}

// IsControlFlow reports whether err represents normal control flow
// (NEED_MOREDATA, SEND_AGAIN, EOS) rather than an unrecoverable failure.
func IsControlFlow(err error) bool {
	switch KindOf(err) {
	case KindNeedMoreData, KindSendAgain, KindEOS:
		return true
	default:
		return false
	}
}

// Wrapf wraps err with additional context, preserving pkg/errors stack
// traces for zerolog's pkgerrors marshaler.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

var (
	// ErrNeedMoreData is the error form of KindNeedMoreData: more input
	// bytes are needed before an access unit can be emitted. The AU
	// assembler itself reports this as a Kind, not as this error.
	ErrNeedMoreData = New(KindNeedMoreData, "need more data")
	// ErrEOS is the error form of KindEOS: the stream's final access unit
	// has been emitted.
	ErrEOS = New(KindEOS, "end of stream")
)
