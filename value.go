package verity

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zoobzio/verity/internal/absent"
)

// DecryptableValue pairs an encrypted payload with the decryptor able to
// recover its plaintext.
//
// The ciphertext is copied on construction and on every read, and never
// changes. The plaintext is computed on the first successful call to Decrypt
// and cached; the decryptor runs at most once per value no matter how many
// goroutines call Decrypt. DecryptableValue must not be copied after first use.
type DecryptableValue[T any] struct {
	decryptor Decryptor[T]
	encrypted []byte

	mu        sync.Mutex
	decrypted atomic.Bool
	plaintext T
}

// NewDecryptableValue creates a value from a decryptor and its ciphertext.
// Both are required; an empty (non-nil) ciphertext is accepted.
func NewDecryptableValue[T any](decryptor Decryptor[T], encrypted []byte) (*DecryptableValue[T], error) {
	if absent.Is(decryptor) {
		return nil, invalidArgument("decryptor is required")
	}
	if encrypted == nil {
		return nil, invalidArgument("encrypted value is required")
	}
	return &DecryptableValue[T]{
		decryptor: decryptor,
		encrypted: bytes.Clone(encrypted),
	}, nil
}

// Decrypt returns the plaintext, running the decryptor on first use.
//
// Concurrent first calls serialize on the value's lock; once the cache is set
// every call returns without locking. A failed decryption is not cached: the
// error is returned and a later call runs the decryptor again.
func (v *DecryptableValue[T]) Decrypt() (T, error) {
	if v.decrypted.Load() {
		return clonePlaintext(v.plaintext), nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.decrypted.Load() {
		return clonePlaintext(v.plaintext), nil
	}

	var zero T
	if absent.Is(v.decryptor) {
		return zero, invalidState("decryptor is missing")
	}
	if v.encrypted == nil {
		return zero, invalidState("encrypted value is missing")
	}

	start := time.Now()
	plaintext, err := v.decryptor.Decrypt(v)
	emitValueDecrypted(context.Background(), describe(v.decryptor), typeName[T](), time.Since(start), err)
	if err != nil {
		return zero, err
	}

	v.plaintext = plaintext
	v.decrypted.Store(true)
	return clonePlaintext(plaintext), nil
}

// Decrypted reports whether the plaintext has been cached.
func (v *DecryptableValue[T]) Decrypted() bool {
	return v.decrypted.Load()
}

// EncryptedValue returns a copy of the ciphertext.
func (v *DecryptableValue[T]) EncryptedValue() []byte {
	return bytes.Clone(v.encrypted)
}

// Decryptor returns the decryptor bound to this value.
func (v *DecryptableValue[T]) Decryptor() Decryptor[T] {
	return v.decryptor
}

// Equal reports whether both values share an equal decryptor and equal
// ciphertext. The cached plaintext takes no part.
func (v *DecryptableValue[T]) Equal(other *DecryptableValue[T]) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	return sameCapability(v.decryptor, other.decryptor) && bytes.Equal(v.encrypted, other.encrypted)
}

// Hash returns a hash consistent with Equal.
func (v *DecryptableValue[T]) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(capabilityKey(v.decryptor))
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(v.encrypted)
	return d.Sum64()
}

// String describes the value without revealing ciphertext or plaintext.
func (v *DecryptableValue[T]) String() string {
	return fmt.Sprintf("DecryptableValue[%s]{decryptor: %s, size: %d, decrypted: %t}",
		typeName[T](), describe(v.decryptor), len(v.encrypted), v.decrypted.Load())
}

// GoString keeps %#v from printing the cached plaintext.
func (v *DecryptableValue[T]) GoString() string {
	return v.String()
}

// clonePlaintext copies byte slices and Cloner values so callers never share
// the cached plaintext.
func clonePlaintext[T any](plaintext T) T {
	switch p := any(plaintext).(type) {
	case []byte:
		if p == nil {
			return plaintext
		}
		return any(bytes.Clone(p)).(T)
	case Cloner[T]:
		return p.Clone()
	}
	return plaintext
}

// describe names a capability for signals and diagnostics.
func describe(c any) string {
	if absent.Is(c) {
		return "<nil>"
	}
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

// typeName returns the name of T for signals.
func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
