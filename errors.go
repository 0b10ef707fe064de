package verity

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidArgument indicates a required input was absent or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates a reconstructed value is missing a required collaborator.
	ErrInvalidState = errors.New("invalid state")

	// ErrCrypto indicates the underlying cryptographic transformation failed.
	ErrCrypto = errors.New("crypto failure")

	// ErrEncrypt indicates a failure during encryption.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates a failure during decryption.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrUnsupportedTransformation indicates an unknown transformation identifier.
	ErrUnsupportedTransformation = errors.New("unsupported transformation")

	// ErrCiphertextShort indicates the ciphertext is too short for its transformation.
	ErrCiphertextShort = errors.New("ciphertext too short")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// Operation names carried by CryptoError.
const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// CryptoError represents a failed encryption or decryption.
// It matches ErrCrypto and the operation sentinel (ErrEncrypt or ErrDecrypt).
// Key material is never part of the message.
type CryptoError struct {
	Op             string // OpEncrypt or OpDecrypt
	Transformation string // Transformation or service that failed, may be empty
	Cause          error  // Original error from the underlying primitive
}

func (e *CryptoError) Error() string {
	msg := e.Op + " failed"
	if e.Transformation != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Transformation)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CryptoError) Unwrap() []error {
	errs := []error{ErrCrypto}
	switch e.Op {
	case OpEncrypt:
		errs = append(errs, ErrEncrypt)
	case OpDecrypt:
		errs = append(errs, ErrDecrypt)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newCryptoError creates a CryptoError for a failed transformation.
func newCryptoError(op, transformation string, cause error) error {
	return &CryptoError{
		Op:             op,
		Transformation: transformation,
		Cause:          cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

// invalidArgument wraps ErrInvalidArgument with a description.
func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// invalidState wraps ErrInvalidState with a description.
func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
