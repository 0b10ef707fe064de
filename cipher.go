package verity

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher errors.
var (
	ErrInvalidParams = errors.New("invalid algorithm parameters")
	ErrBadPadding    = errors.New("bad padding")
)

// CipherOption configures a Cipherer or Decipherer.
type CipherOption func(*cipherParams)

// cipherParams holds the optional algorithm parameters.
type cipherParams struct {
	iv  []byte // fixed nonce/IV; nil means a random one per message
	aad []byte // additional authenticated data for AEAD transformations
}

// WithParams fixes the nonce (AEAD) or IV (CBC) instead of drawing a fresh
// random one for every message. The decryptor bound to each produced value
// carries the same parameters. Reusing a nonce under one key breaks AEAD
// confidentiality; prefer the default unless a protocol dictates the IV.
func WithParams(iv []byte) CipherOption {
	return func(p *cipherParams) {
		p.iv = bytes.Clone(iv)
	}
}

// WithAdditionalData authenticates aad alongside the ciphertext.
// Ignored by non-AEAD transformations.
func WithAdditionalData(aad []byte) CipherOption {
	return func(p *cipherParams) {
		p.aad = bytes.Clone(aad)
	}
}

// NewCipherService returns a service over []byte plaintexts backed by a
// symmetric cipher. The transformation and key are required; whether the
// cipher accepts them is only known when it runs, so an unsupported
// transformation or bad key surfaces as a CryptoError from Encrypt or Decrypt.
func NewCipherService(transformation Transformation, key []byte, opts ...CipherOption) (*CryptographicService[[]byte], error) {
	c, err := NewCipherer(transformation, key, opts...)
	if err != nil {
		return nil, err
	}
	return NewCryptographicService[[]byte](c.decipherer, c)
}

// Cipherer encrypts byte slices with a symmetric cipher.
type Cipherer struct {
	decipherer *Decipherer
}

// NewCipherer creates a Cipherer. The transformation and key are required.
func NewCipherer(transformation Transformation, key []byte, opts ...CipherOption) (*Cipherer, error) {
	d, err := NewDecipherer(transformation, key, opts...)
	if err != nil {
		return nil, err
	}
	return &Cipherer{decipherer: d}, nil
}

// Name identifies the cipherer by its transformation.
func (c *Cipherer) Name() string {
	return c.decipherer.Name()
}

// Encrypt encrypts plaintext and binds the result to the matching Decipherer.
// A nil plaintext is encrypted as an empty one.
func (c *Cipherer) Encrypt(plaintext []byte) (*DecryptableValue[[]byte], error) {
	d := c.decipherer
	ciphertext, err := seal(d.transformation, d.key, d.params, plaintext)
	if err != nil {
		return nil, newCryptoError(OpEncrypt, string(d.transformation), err)
	}
	return NewDecryptableValue[[]byte](d, ciphertext)
}

// Equal reports whether other is a Cipherer with an equal Decipherer.
func (c *Cipherer) Equal(other any) bool {
	o, ok := other.(*Cipherer)
	if !ok || c == nil || o == nil {
		return ok && c == o
	}
	return c.decipherer.Equal(o.decipherer)
}

// Decipherer decrypts byte slices produced by a Cipherer with the same
// transformation, key and parameters.
type Decipherer struct {
	transformation Transformation
	key            []byte
	params         cipherParams
}

// NewDecipherer creates a Decipherer. The transformation and key are required.
func NewDecipherer(transformation Transformation, key []byte, opts ...CipherOption) (*Decipherer, error) {
	if transformation == "" {
		return nil, invalidArgument("transformation is required")
	}
	if len(key) == 0 {
		return nil, invalidArgument("key is required")
	}

	d := &Decipherer{
		transformation: transformation,
		key:            bytes.Clone(key),
	}
	for _, opt := range opts {
		opt(&d.params)
	}
	return d, nil
}

// Name identifies the decipherer by its transformation.
func (d *Decipherer) Name() string {
	return string(d.transformation)
}

// Transformation returns the decipherer's transformation.
func (d *Decipherer) Transformation() Transformation {
	return d.transformation
}

// WithParams returns a copy of d using the given nonce or IV.
func (d *Decipherer) WithParams(iv []byte) *Decipherer {
	clone := *d
	clone.params.iv = bytes.Clone(iv)
	return &clone
}

// Decrypt reverses the transformation captured in value.
func (d *Decipherer) Decrypt(value *DecryptableValue[[]byte]) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	plaintext, err := open(d.transformation, d.key, d.params, value.EncryptedValue())
	if err != nil {
		return nil, newCryptoError(OpDecrypt, string(d.transformation), err)
	}
	return plaintext, nil
}

// Equal reports whether other is a Decipherer with the same transformation,
// key and parameters. Keys are compared in constant time.
func (d *Decipherer) Equal(other any) bool {
	o, ok := other.(*Decipherer)
	if !ok || d == nil || o == nil {
		return ok && d == o
	}
	return d.transformation == o.transformation &&
		subtle.ConstantTimeCompare(d.key, o.key) == 1 &&
		bytes.Equal(d.params.iv, o.params.iv) &&
		bytes.Equal(d.params.aad, o.params.aad)
}

// seal runs the encrypting direction of a transformation.
func seal(t Transformation, key []byte, p cipherParams, plaintext []byte) ([]byte, error) {
	if t == AESCBC {
		return sealCBC(key, p, plaintext)
	}

	aead, err := newAEAD(t, key)
	if err != nil {
		return nil, err
	}

	if p.iv != nil {
		if len(p.iv) != aead.NonceSize() {
			return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrInvalidParams, aead.NonceSize(), len(p.iv))
		}
		return aead.Seal(nil, p.iv, plaintext, p.aad), nil
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend nonce to ciphertext
	return aead.Seal(nonce, nonce, plaintext, p.aad), nil
}

// open runs the decrypting direction of a transformation.
func open(t Transformation, key []byte, p cipherParams, ciphertext []byte) ([]byte, error) {
	if t == AESCBC {
		return openCBC(key, p, ciphertext)
	}

	aead, err := newAEAD(t, key)
	if err != nil {
		return nil, err
	}

	nonce := p.iv
	if nonce == nil {
		nonceSize := aead.NonceSize()
		if len(ciphertext) < nonceSize {
			return nil, ErrCiphertextShort
		}
		nonce, ciphertext = ciphertext[:nonceSize], ciphertext[nonceSize:]
	} else if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrInvalidParams, aead.NonceSize(), len(nonce))
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, p.aad)
	if err != nil {
		return nil, err
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// newAEAD builds the AEAD for a transformation.
func newAEAD(t Transformation, key []byte) (cipher.AEAD, error) {
	switch t {
	case AESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	case XChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransformation, t)
}

func sealCBC(key []byte, p cipherParams, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := p.iv
	prefix := iv == nil
	if prefix {
		iv = make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(rand.Reader, iv); err != nil {
			return nil, err
		}
	} else if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidParams, aes.BlockSize, len(iv))
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	if prefix {
		return append(bytes.Clone(iv), out...), nil
	}
	return out, nil
}

func openCBC(key []byte, p cipherParams, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := p.iv
	if iv == nil {
		if len(ciphertext) < aes.BlockSize {
			return nil, ErrCiphertextShort
		}
		iv, ciphertext = ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	} else if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidParams, aes.BlockSize, len(iv))
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrCiphertextShort
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, aes.BlockSize)
}

// pkcs7Pad pads data to a multiple of size. PKCS#5 is PKCS#7 at an 8-byte
// block; AES uses 16.
func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}
