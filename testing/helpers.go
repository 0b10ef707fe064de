// Package testing provides test utilities for verity.
package testing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/verity"
)

// TestKey returns a valid 32-byte key for testing.
// Suitable for every built-in transformation.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestCipherService returns a cipher-backed service keyed with TestKey.
func TestCipherService(tb testing.TB, transformation verity.Transformation) *verity.CryptographicService[[]byte] {
	tb.Helper()
	svc, err := verity.NewCipherService(transformation, TestKey(tb))
	if err != nil {
		tb.Fatalf("NewCipherService(%s) error: %v", transformation, err)
	}
	return svc
}

// TestPassThroughService returns a UTF-8 pass-through service.
func TestPassThroughService(tb testing.TB) *verity.CryptographicService[string] {
	tb.Helper()
	svc, err := verity.NewPassThroughService(verity.DefaultCharset)
	if err != nil {
		tb.Fatalf("NewPassThroughService() error: %v", err)
	}
	return svc
}

// CountingDecryptor wraps a decryptor and counts its invocations.
// An optional delay widens the window for concurrent first calls.
type CountingDecryptor[T any] struct {
	delegate verity.Decryptor[T]
	delay    time.Duration
	calls    atomic.Int64
}

// NewCountingDecryptor wraps delegate.
func NewCountingDecryptor[T any](delegate verity.Decryptor[T], delay time.Duration) *CountingDecryptor[T] {
	return &CountingDecryptor[T]{delegate: delegate, delay: delay}
}

// Decrypt records the call, waits for the delay, then delegates.
func (c *CountingDecryptor[T]) Decrypt(value *verity.DecryptableValue[T]) (T, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.delegate.Decrypt(value)
}

// Calls returns the number of Decrypt invocations so far.
func (c *CountingDecryptor[T]) Calls() int64 {
	return c.calls.Load()
}

// FailingDecryptor always fails with Err.
type FailingDecryptor[T any] struct {
	Err error
}

// Decrypt returns the zero value and Err.
func (f FailingDecryptor[T]) Decrypt(*verity.DecryptableValue[T]) (T, error) {
	var zero T
	return zero, f.Err
}

// ReverseDecryptor "decrypts" by reversing the ciphertext bytes into a string.
// Paired with ReverseEncryptor it gives a keyless round trip for tests.
type ReverseDecryptor struct{}

// Decrypt reverses the value's bytes.
func (ReverseDecryptor) Decrypt(value *verity.DecryptableValue[string]) (string, error) {
	return string(reverse(value.EncryptedValue())), nil
}

// ReverseEncryptor "encrypts" by reversing the plaintext bytes.
type ReverseEncryptor struct{}

// Encrypt reverses plaintext and binds it to ReverseDecryptor.
func (ReverseEncryptor) Encrypt(plaintext string) (*verity.DecryptableValue[string], error) {
	return verity.NewDecryptableValue[string](ReverseDecryptor{}, reverse([]byte(plaintext)))
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
