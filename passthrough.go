package verity

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is the encoding used by pass-through services when none is given.
const DefaultCharset = "utf-8"

// NewPassThroughService returns a service that "encrypts" a string by encoding
// it under the named character encoding and decrypts by decoding the bytes.
// It provides no secrecy and exists for tests and degenerate configurations.
//
// Encoding names are WHATWG labels ("utf-8", "latin1", "shift_jis", ...) and
// are canonicalized, so two services are equal iff their encodings are.
// An unknown name fails with ErrInvalidArgument.
func NewPassThroughService(charset string) (*CryptographicService[string], error) {
	_, name, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}

	d := PassThroughDecryptor{charset: name}
	return NewCryptographicService[string](d, PassThroughEncryptor{decryptor: d})
}

// PassThroughDecryptor decodes ciphertext bytes under a character encoding.
type PassThroughDecryptor struct {
	charset string
}

// Name identifies the decryptor by its canonical encoding name.
func (d PassThroughDecryptor) Name() string {
	return "passthrough:" + d.charset
}

// Charset returns the canonical encoding name.
func (d PassThroughDecryptor) Charset() string {
	return d.charset
}

// Decrypt decodes the value's bytes.
func (d PassThroughDecryptor) Decrypt(value *DecryptableValue[string]) (string, error) {
	if value == nil {
		return "", nil
	}

	enc, _, err := lookupCharset(d.charset)
	if err != nil {
		return "", newCryptoError(OpDecrypt, d.Name(), err)
	}

	out, err := enc.NewDecoder().Bytes(value.EncryptedValue())
	if err != nil {
		return "", newCryptoError(OpDecrypt, d.Name(), err)
	}
	return string(out), nil
}

// PassThroughEncryptor encodes strings under a character encoding.
type PassThroughEncryptor struct {
	decryptor PassThroughDecryptor
}

// Encrypt encodes plaintext and binds the result to the matching decryptor.
func (e PassThroughEncryptor) Encrypt(plaintext string) (*DecryptableValue[string], error) {
	enc, _, err := lookupCharset(e.decryptor.charset)
	if err != nil {
		return nil, newCryptoError(OpEncrypt, e.decryptor.Name(), err)
	}

	out, err := enc.NewEncoder().String(plaintext)
	if err != nil {
		return nil, newCryptoError(OpEncrypt, e.decryptor.Name(), err)
	}
	return NewDecryptableValue[string](e.decryptor, append([]byte{}, out...))
}

// lookupCharset resolves an encoding label to its encoding and canonical name.
func lookupCharset(label string) (encoding.Encoding, string, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", invalidArgument("unknown charset %q", label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", invalidArgument("unknown charset %q", label)
	}
	return enc, name, nil
}
