package json

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/verity"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestSealOpen(t *testing.T) {
	svc, err := verity.NewPassThroughService(verity.DefaultCharset)
	if err != nil {
		t.Fatalf("NewPassThroughService() error: %v", err)
	}
	keyring := verity.NewKeyring[string]()
	if err := keyring.Register("passthrough", svc.Decryptor()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	value, err := svc.Encrypt("Adenosine triphosphate")
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	data, err := verity.Seal(context.Background(), New(), keyring, value)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	restored, err := verity.Open(context.Background(), New(), keyring, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if restored.Decrypted() {
		t.Error("restored value should start with an empty cache")
	}
	if !restored.Equal(value) || restored.Hash() != value.Hash() {
		t.Error("restored value should equal the sealed one")
	}

	plaintext, err := restored.Decrypt()
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if plaintext != "Adenosine triphosphate" {
		t.Errorf("Decrypt() = %q, want %q", plaintext, "Adenosine triphosphate")
	}
}

func TestSealOpen_EmptyCiphertext(t *testing.T) {
	svc, _ := verity.NewPassThroughService(verity.DefaultCharset)
	keyring := verity.NewKeyring[string]()
	_ = keyring.Register("passthrough", svc.Decryptor())

	value, _ := svc.Encrypt("")
	data, err := verity.Seal(context.Background(), New(), keyring, value)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	restored, err := verity.Open(context.Background(), New(), keyring, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if got, _ := restored.Decrypt(); got != "" {
		t.Errorf("Decrypt() = %q, want empty", got)
	}
}

func TestOpen_MissingDecryptor(t *testing.T) {
	c := New()
	data, err := c.Marshal(verity.Record{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	_, err = verity.Open(context.Background(), c, verity.NewKeyring[string](), data)
	if !errors.Is(err, verity.ErrInvalidState) {
		t.Errorf("Open() error = %v, want ErrInvalidState", err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	_, err := verity.Open(context.Background(), New(), verity.NewKeyring[string](), []byte("{not json"))
	if !errors.Is(err, verity.ErrUnmarshal) {
		t.Errorf("Open(invalid) error = %v, want ErrUnmarshal", err)
	}
}
