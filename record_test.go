package verity_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/zoobzio/verity"
	"github.com/zoobzio/verity/json"
	veritytest "github.com/zoobzio/verity/testing"
)

func TestSeal(t *testing.T) {
	keyring := verity.NewKeyring[string]()
	_ = keyring.Register("reverse", veritytest.ReverseDecryptor{})

	value, _ := verity.NewDecryptableValue[string](veritytest.ReverseDecryptor{}, []byte("terces"))
	_, _ = value.Decrypt()

	data, err := verity.Seal(context.Background(), json.New(), keyring, value)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	want := `{"decryptor":"reverse","value":"` + base64.StdEncoding.EncodeToString([]byte("terces")) + `"}`
	if string(data) != want {
		t.Errorf("Seal() = %s, want %s", data, want)
	}
}

func TestSeal_InvalidArgument(t *testing.T) {
	keyring := verity.NewKeyring[string]()
	value, _ := verity.NewDecryptableValue[string](veritytest.ReverseDecryptor{}, []byte("x"))
	ctx := context.Background()

	tests := []struct {
		name    string
		codec   verity.Codec
		keyring *verity.Keyring[string]
		value   *verity.DecryptableValue[string]
	}{
		{"nil codec", nil, keyring, value},
		{"nil keyring", json.New(), nil, value},
		{"nil value", json.New(), keyring, nil},
		{"unregistered decryptor", json.New(), keyring, value},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := verity.Seal(ctx, tt.codec, tt.keyring, tt.value); !errors.Is(err, verity.ErrInvalidArgument) {
				t.Errorf("Seal() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	keyring := verity.NewKeyring[string]()
	counting := veritytest.NewCountingDecryptor[string](veritytest.ReverseDecryptor{}, 0)
	_ = keyring.Register("reverse", counting)

	data := []byte(`{"decryptor":"reverse","value":"` + base64.StdEncoding.EncodeToString([]byte("terces")) + `"}`)
	value, err := verity.Open(context.Background(), json.New(), keyring, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if value.Decrypted() {
		t.Error("restored value should start with an empty cache")
	}
	if value.Decryptor() != verity.Decryptor[string](counting) {
		t.Error("restored value should use the keyring's decryptor")
	}

	got, _ := value.Decrypt()
	if got != "secret" {
		t.Errorf("Decrypt() = %q, want %q", got, "secret")
	}
	if counting.Calls() != 1 {
		t.Errorf("decryptor calls = %d, want 1", counting.Calls())
	}
}

func TestOpen_InvalidState(t *testing.T) {
	keyring := verity.NewKeyring[string]()
	_ = keyring.Register("reverse", veritytest.ReverseDecryptor{})

	tests := map[string]string{
		"missing decryptor": `{"value":"eA=="}`,
		"unknown decryptor": `{"decryptor":"rot13","value":"eA=="}`,
		"missing value":     `{"decryptor":"reverse"}`,
		"null value":        `{"decryptor":"reverse","value":null}`,
		"bad base64":        `{"decryptor":"reverse","value":"%%%"}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := verity.Open(context.Background(), json.New(), keyring, []byte(data))
			if !errors.Is(err, verity.ErrInvalidState) {
				t.Errorf("Open() error = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestOpen_CodecError(t *testing.T) {
	keyring := verity.NewKeyring[string]()

	_, err := verity.Open(context.Background(), json.New(), keyring, []byte("{not json"))
	if !errors.Is(err, verity.ErrUnmarshal) {
		t.Errorf("Open() error = %v, want ErrUnmarshal", err)
	}

	var codecErr *verity.CodecError
	if !errors.As(err, &codecErr) {
		t.Errorf("error should be *CodecError, got %T", err)
	}
}

func TestSealOpen_EqualValues(t *testing.T) {
	svc := veritytest.TestCipherService(t, verity.XChaCha20Poly1305)
	keyring := verity.NewKeyring[[]byte]()
	_ = keyring.Register("primary", svc.Decryptor())

	value, _ := svc.Encrypt([]byte("card"))
	data, err := verity.Seal(context.Background(), json.New(), keyring, value)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	restored, err := verity.Open(context.Background(), json.New(), keyring, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if !restored.Equal(value) || restored.Hash() != value.Hash() {
		t.Error("restored value should equal the sealed one")
	}
}

func TestSealOpen_DecryptorFunc(t *testing.T) {
	keyring := verity.NewKeyring[string]()
	fn := newReverseFunc()
	_ = keyring.Register("fn", fn)

	value, _ := verity.NewDecryptableValue[string](fn, []byte("terces"))
	data, err := verity.Seal(context.Background(), json.New(), keyring, value)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	restored, err := verity.Open(context.Background(), json.New(), keyring, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if got, _ := restored.Decrypt(); got != "secret" {
		t.Errorf("Decrypt() = %q, want %q", got, "secret")
	}
	if !restored.Equal(value) {
		t.Error("restored value should equal the sealed one")
	}
}
