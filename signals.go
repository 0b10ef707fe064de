package verity

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for verity events.
var (
	SignalServiceCreated  = capitan.NewSignal("verity.service.created", "Cryptographic service instantiated")
	SignalEncryptStart    = capitan.NewSignal("verity.encrypt.start", "Encrypt operation beginning")
	SignalEncryptComplete = capitan.NewSignal("verity.encrypt.complete", "Encrypt operation finished")
	SignalDecryptStart    = capitan.NewSignal("verity.decrypt.start", "Decrypt operation beginning")
	SignalDecryptComplete = capitan.NewSignal("verity.decrypt.complete", "Decrypt operation finished")
	SignalValueDecrypted  = capitan.NewSignal("verity.value.decrypted", "Decryptable value populated its cache")
	SignalSealComplete    = capitan.NewSignal("verity.seal.complete", "Decryptable value written to a record")
	SignalOpenComplete    = capitan.NewSignal("verity.open.complete", "Decryptable value restored from a record")
)

// Keys for typed event data.
var (
	KeyService     = capitan.NewStringKey("service")
	KeyDecryptor   = capitan.NewStringKey("decryptor")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitServiceCreated emits an event when a service is created.
func emitServiceCreated(ctx context.Context, service, typeName string) {
	capitan.Emit(ctx, SignalServiceCreated,
		KeyService.Field(service),
		KeyTypeName.Field(typeName),
	)
}

// emitEncryptStart emits an event when encryption begins.
func emitEncryptStart(ctx context.Context, service, typeName string) {
	capitan.Emit(ctx, SignalEncryptStart,
		KeyService.Field(service),
		KeyTypeName.Field(typeName),
	)
}

// emitEncryptComplete emits an event when encryption finishes.
func emitEncryptComplete(ctx context.Context, service, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyService.Field(service),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncryptComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncryptComplete, fields...)
	}
}

// emitDecryptStart emits an event when decryption begins.
func emitDecryptStart(ctx context.Context, service, typeName string) {
	capitan.Emit(ctx, SignalDecryptStart,
		KeyService.Field(service),
		KeyTypeName.Field(typeName),
	)
}

// emitDecryptComplete emits an event when decryption finishes.
func emitDecryptComplete(ctx context.Context, service, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyService.Field(service),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecryptComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecryptComplete, fields...)
	}
}

// emitValueDecrypted emits an event when a value runs its decryptor.
func emitValueDecrypted(ctx context.Context, decryptor, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDecryptor.Field(decryptor),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalValueDecrypted, fields...)
	} else {
		capitan.Emit(ctx, SignalValueDecrypted, fields...)
	}
}

// emitSealComplete emits an event when a value has been written to a record.
func emitSealComplete(ctx context.Context, contentType, decryptor string, size int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyDecryptor.Field(decryptor),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSealComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSealComplete, fields...)
	}
}

// emitOpenComplete emits an event when a value has been restored from a record.
func emitOpenComplete(ctx context.Context, contentType, decryptor string, size int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyDecryptor.Field(decryptor),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalOpenComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalOpenComplete, fields...)
	}
}
