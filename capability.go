package verity

// Transformation identifies a symmetric cipher, its mode and padding.
// Names follow the "algorithm/mode/padding" convention where one applies.
type Transformation string

const (
	// AESGCM uses AES in Galois/Counter Mode. Keys are 16, 24 or 32 bytes;
	// the nonce is 12 bytes.
	AESGCM Transformation = "AES/GCM/NoPadding"

	// AESCBC uses AES in cipher block chaining mode with PKCS#5 padding.
	// Keys are 16, 24 or 32 bytes; the IV is 16 bytes. Not authenticated.
	AESCBC Transformation = "AES/CBC/PKCS5Padding"

	// ChaCha20Poly1305 uses the ChaCha20-Poly1305 AEAD. Keys are 32 bytes;
	// the nonce is 12 bytes.
	ChaCha20Poly1305 Transformation = "ChaCha20-Poly1305"

	// XChaCha20Poly1305 uses the XChaCha20-Poly1305 AEAD. Keys are 32 bytes;
	// the nonce is 24 bytes, so random nonces are safe for any volume.
	XChaCha20Poly1305 Transformation = "XChaCha20-Poly1305"
)

// validTransformations contains all transformations the cipher service can run.
var validTransformations = map[Transformation]bool{
	AESGCM:            true,
	AESCBC:            true,
	ChaCha20Poly1305:  true,
	XChaCha20Poly1305: true,
}

// IsValidTransformation returns true if the transformation is supported.
func IsValidTransformation(t Transformation) bool {
	return validTransformations[t]
}
