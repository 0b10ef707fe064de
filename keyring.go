package verity

import (
	"slices"
	"sync"

	"github.com/zoobzio/verity/internal/absent"
)

// Keyring maps stable names to decryptors so a DecryptableValue can cross a
// persistence boundary: the record carries the name, and Open resolves it back
// to the live decryptor. Keyrings are safe for concurrent use.
type Keyring[T any] struct {
	mu         sync.RWMutex
	decryptors map[string]Decryptor[T]
}

// NewKeyring creates an empty keyring.
func NewKeyring[T any]() *Keyring[T] {
	return &Keyring[T]{decryptors: make(map[string]Decryptor[T])}
}

// Register binds name to decryptor, replacing any previous binding.
func (k *Keyring[T]) Register(name string, decryptor Decryptor[T]) error {
	if name == "" {
		return invalidArgument("decryptor name is required")
	}
	if absent.Is(decryptor) {
		return invalidArgument("decryptor is required")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.decryptors[name] = decryptor
	return nil
}

// Lookup returns the decryptor bound to name.
func (k *Keyring[T]) Lookup(name string) (Decryptor[T], bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	d, ok := k.decryptors[name]
	return d, ok
}

// NameOf returns the first name, in sorted order, bound to a decryptor equal
// to the given one. A registered DecryptorFunc is found by the same function
// value; decryptors that are not comparable are matched by deep equality.
func (k *Keyring[T]) NameOf(decryptor Decryptor[T]) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	for _, name := range k.sortedNames() {
		if sameCapability(k.decryptors[name], decryptor) {
			return name, true
		}
	}
	return "", false
}

// Names returns the registered names in sorted order.
func (k *Keyring[T]) Names() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.sortedNames()
}

// Reset removes every binding.
func (k *Keyring[T]) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.decryptors = make(map[string]Decryptor[T])
}

// sortedNames must be called with mu held.
func (k *Keyring[T]) sortedNames() []string {
	names := make([]string, 0, len(k.decryptors))
	for name := range k.decryptors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
