package verity

import (
	"context"
	"time"

	"github.com/zoobzio/verity/internal/absent"
)

// CryptographicService pairs one Encryptor and one Decryptor for a plaintext
// type and delegates both directions to them.
//
// Unlike the bare capabilities, the service rejects absent arguments: a nil
// plaintext (pointer, slice, map or interface) or a nil value fails with
// ErrInvalidArgument. Services are safe for concurrent use.
type CryptographicService[T any] struct {
	decryptor Decryptor[T]
	encryptor Encryptor[T]

	// Type metadata
	name     string
	typeName string
}

// NewCryptographicService creates a service from a decryptor and an encryptor.
// Both are required.
func NewCryptographicService[T any](decryptor Decryptor[T], encryptor Encryptor[T]) (*CryptographicService[T], error) {
	if absent.Is(decryptor) {
		return nil, invalidArgument("decryptor is required")
	}
	if absent.Is(encryptor) {
		return nil, invalidArgument("encryptor is required")
	}

	s := &CryptographicService[T]{
		decryptor: decryptor,
		encryptor: encryptor,
		name:      describe(decryptor),
		typeName:  typeName[T](),
	}

	emitServiceCreated(context.Background(), s.name, s.typeName)
	return s, nil
}

// Encrypt delegates to the service's encryptor.
func (s *CryptographicService[T]) Encrypt(value T) (*DecryptableValue[T], error) {
	if absent.Is(value) {
		return nil, invalidArgument("encryptable value should be provided")
	}

	ctx := context.Background()
	emitEncryptStart(ctx, s.name, s.typeName)
	start := time.Now()

	encrypted, err := s.encryptor.Encrypt(value)

	size := 0
	if encrypted != nil {
		size = len(encrypted.encrypted)
	}
	emitEncryptComplete(ctx, s.name, s.typeName, size, time.Since(start), err)
	return encrypted, err
}

// Decrypt delegates to the service's decryptor. It does not consult or
// populate the value's cache; use DecryptableValue.Decrypt for memoized access.
func (s *CryptographicService[T]) Decrypt(value *DecryptableValue[T]) (T, error) {
	if value == nil {
		var zero T
		return zero, invalidArgument("decryptable value should be provided")
	}

	ctx := context.Background()
	emitDecryptStart(ctx, s.name, s.typeName)
	start := time.Now()

	plaintext, err := s.decryptor.Decrypt(value)

	emitDecryptComplete(ctx, s.name, s.typeName, time.Since(start), err)
	return plaintext, err
}

// Decryptor returns the service's decryptor.
func (s *CryptographicService[T]) Decryptor() Decryptor[T] {
	return s.decryptor
}

// Encryptor returns the service's encryptor.
func (s *CryptographicService[T]) Encryptor() Encryptor[T] {
	return s.encryptor
}

// Equal reports whether both services hold equal decryptor and encryptor pairs.
func (s *CryptographicService[T]) Equal(other *CryptographicService[T]) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return sameCapability(s.decryptor, other.decryptor) && sameCapability(s.encryptor, other.encryptor)
}

// String names the service without revealing key material.
func (s *CryptographicService[T]) String() string {
	return "CryptographicService[" + s.typeName + "]{" + s.name + "}"
}
