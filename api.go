// Package verity provides lazily-decrypted values and the capabilities that
// produce and reverse them.
//
// A DecryptableValue pairs an opaque ciphertext with the Decryptor able to
// recover its plaintext. Decryption happens on demand, at most once per value,
// and the result is cached for every later caller:
//
//	svc, _ := verity.NewCipherService(verity.AESGCM, key)
//
//	value, _ := svc.Encrypt([]byte("4111 1111 1111 1111"))
//	plaintext, _ := value.Decrypt() // runs the cipher
//	plaintext, _ = value.Decrypt()  // served from cache
//
// # Services
//
// A CryptographicService pairs one Encryptor and one Decryptor for a plaintext
// type. Built-in services:
//
//   - NewPassThroughService(charset) - encodes strings under a named charset
//   - NewCipherService(transformation, key) - symmetric ciphers over []byte
//
// # Transformations
//
//   - AESGCM - AES in GCM mode
//   - AESCBC - AES in CBC mode with PKCS#5 padding
//   - ChaCha20Poly1305 - ChaCha20-Poly1305 AEAD
//   - XChaCha20Poly1305 - XChaCha20-Poly1305 AEAD with extended nonce
//
// # Persistence
//
// Only the decryptor and the ciphertext are durable. Seal writes a Record
// through a Codec, naming the decryptor by its Keyring entry; Open resolves the
// name again and returns a value whose cache starts empty.
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package verity

// Encryptor transforms plaintext into a DecryptableValue bound to a decryptor
// able to reverse that exact transformation.
type Encryptor[T any] interface {
	// Encrypt must not mutate plaintext.
	Encrypt(plaintext T) (*DecryptableValue[T], error)
}

// Decryptor reverses the transformation captured in a DecryptableValue.
//
// Implementations read the ciphertext through EncryptedValue and must not call
// Decrypt on the value they are given.
type Decryptor[T any] interface {
	Decrypt(value *DecryptableValue[T]) (T, error)
}

// EncryptorFunc adapts a function to the Encryptor interface.
type EncryptorFunc[T any] func(plaintext T) (*DecryptableValue[T], error)

// Encrypt calls f(plaintext).
func (f EncryptorFunc[T]) Encrypt(plaintext T) (*DecryptableValue[T], error) {
	return f(plaintext)
}

// DecryptorFunc adapts a function to the Decryptor interface.
// A DecryptorFunc is the same capability only as copies of the same function
// value; two closures built from one literal are different capabilities.
type DecryptorFunc[T any] func(value *DecryptableValue[T]) (T, error)

// Decrypt calls f(value).
func (f DecryptorFunc[T]) Decrypt(value *DecryptableValue[T]) (T, error) {
	return f(value)
}

// Named is implemented by capabilities with a stable, key-free identifier.
// The name appears in signals and diagnostics and keys DecryptableValue.Hash,
// so capabilities that are equal must report the same name.
//
// Capabilities may also define Equal(any) bool. It is only consulted for two
// values of the same dynamic type and must never hold across types.
type Named interface {
	Name() string
}

// Cloner allows plaintext types to provide deep copy logic.
//
// A cached plaintext implementing Cloner is cloned on every return from
// DecryptableValue.Decrypt, so callers cannot mutate the cache. []byte
// plaintexts are always copied.
//
// For simple value types with no pointers, slices, or maps, Clone can simply return
// the receiver value:
//
//	func (c Card) Clone() Card { return c }
type Cloner[T any] interface {
	Clone() T
}

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
