package verity

import (
	"sync"
)

var (
	passThroughs   = make(map[string]*CryptographicService[string])
	passThroughsMu sync.RWMutex
)

// UsePassThrough returns a shared pass-through service for the charset,
// building it on first use. Labels naming the same encoding share an instance.
func UsePassThrough(charset string) (*CryptographicService[string], error) {
	_, name, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}

	// Fast path: read-lock cache check
	passThroughsMu.RLock()
	if cached, ok := passThroughs[name]; ok {
		passThroughsMu.RUnlock()
		return cached, nil
	}
	passThroughsMu.RUnlock()

	// Slow path: build and cache with write-lock
	passThroughsMu.Lock()
	defer passThroughsMu.Unlock()

	// Double-check pattern
	if cached, ok := passThroughs[name]; ok {
		return cached, nil
	}

	svc, err := NewPassThroughService(name)
	if err != nil {
		return nil, err
	}

	passThroughs[name] = svc
	return svc, nil
}

// Reset clears the shared pass-through services.
// This is primarily useful for test isolation.
func Reset() {
	passThroughsMu.Lock()
	defer passThroughsMu.Unlock()
	passThroughs = make(map[string]*CryptographicService[string])
}
