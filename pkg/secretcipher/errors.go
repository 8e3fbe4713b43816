package secretcipher

import "errors"

var (
	// Key material errors
	ErrMissingKeyMaterial = errors.New("missing key material")

	// Encryption/decryption errors
	ErrEncryptionFailed    = errors.New("encryption failed")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrMalformedCiphertext = errors.New("malformed ciphertext blob")
)
