package verity

import (
	"context"
	"encoding/base64"
)

// Record is the durable form of a DecryptableValue: the name of its decryptor
// and its base64-encoded ciphertext. The cached plaintext is never recorded.
type Record struct {
	Decryptor string  `json:"decryptor" xml:"decryptor" yaml:"decryptor" msgpack:"decryptor" bson:"decryptor"`
	Value     *string `json:"value" xml:"value" yaml:"value" msgpack:"value" bson:"value"`
}

// Seal encodes value as a Record through codec. The value's decryptor must be
// registered in keyring; an unregistered decryptor fails with
// ErrInvalidArgument.
func Seal[T any](ctx context.Context, codec Codec, keyring *Keyring[T], value *DecryptableValue[T]) ([]byte, error) {
	if codec == nil {
		return nil, invalidArgument("codec is required")
	}
	if keyring == nil {
		return nil, invalidArgument("keyring is required")
	}
	if value == nil {
		return nil, invalidArgument("decryptable value should be provided")
	}

	name, ok := keyring.NameOf(value.decryptor)
	if !ok {
		err := invalidArgument("decryptor %s is not registered", describe(value.decryptor))
		emitSealComplete(ctx, codec.ContentType(), describe(value.decryptor), 0, err)
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(value.encrypted)
	data, err := codec.Marshal(Record{Decryptor: name, Value: &encoded})
	if err != nil {
		err = newCodecError(ErrMarshal, err)
		emitSealComplete(ctx, codec.ContentType(), name, 0, err)
		return nil, err
	}

	emitSealComplete(ctx, codec.ContentType(), name, len(data), nil)
	return data, nil
}

// Open decodes a Record through codec and resolves its decryptor in keyring.
// The returned value has not been decrypted yet.
//
// A record without a decryptor name, with a name unknown to keyring, or
// without a decodable ciphertext fails with ErrInvalidState.
func Open[T any](ctx context.Context, codec Codec, keyring *Keyring[T], data []byte) (*DecryptableValue[T], error) {
	if codec == nil {
		return nil, invalidArgument("codec is required")
	}
	if keyring == nil {
		return nil, invalidArgument("keyring is required")
	}

	var rec Record
	if err := codec.Unmarshal(data, &rec); err != nil {
		err = newCodecError(ErrUnmarshal, err)
		emitOpenComplete(ctx, codec.ContentType(), "", len(data), err)
		return nil, err
	}

	value, err := restore(keyring, rec)
	emitOpenComplete(ctx, codec.ContentType(), rec.Decryptor, len(data), err)
	return value, err
}

// restore rebuilds a value from a decoded record.
func restore[T any](keyring *Keyring[T], rec Record) (*DecryptableValue[T], error) {
	if rec.Decryptor == "" {
		return nil, invalidState("decryptor is missing")
	}
	decryptor, ok := keyring.Lookup(rec.Decryptor)
	if !ok {
		return nil, invalidState("unknown decryptor %q", rec.Decryptor)
	}
	if rec.Value == nil {
		return nil, invalidState("encrypted value is missing")
	}

	encrypted, err := base64.StdEncoding.DecodeString(*rec.Value)
	if err != nil {
		return nil, invalidState("encrypted value is not valid base64")
	}
	if encrypted == nil {
		encrypted = []byte{}
	}

	return &DecryptableValue[T]{
		decryptor: decryptor,
		encrypted: encrypted,
	}, nil
}
