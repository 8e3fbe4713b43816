package secretcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize = 16     // Random salt prepended to every blob
	IVSize   = 16     // GCM nonce size; fixed by the storage format
	TagSize  = 16     // GCM authentication tag appended by Seal
	KeySize  = 32     // 256-bit derived key for AES-256
	KDFIters = 100000 // PBKDF2 iteration count; deliberately slow
)

// minBlobSize is the smallest decodable blob: salt + iv + tag with an empty ciphertext.
const minBlobSize = SaltSize + IVSize + TagSize

// deriveKey stretches the caller-supplied key material into an AES-256 key
// using PBKDF2-SHA256 with the per-blob salt.
func deriveKey(keyMaterial string, salt []byte) []byte {
	return pbkdf2.Key([]byte(keyMaterial), salt, KDFIters, KeySize, sha256.New)
}

// Encrypt protects a plaintext secret with AES-256-GCM under a key derived
// from keyMaterial and a fresh random salt. The result is
// base64(salt || iv || ciphertext || tag) and is fully self-describing: no
// auxiliary metadata is needed to decrypt it later.
//
// Salt and IV are resampled on every call, so encrypting the same plaintext
// twice yields two different blobs. Callers must replace the stored blob on
// update, never patch it in place.
func Encrypt(plaintext string, keyMaterial string) (string, error) {
	if keyMaterial == "" {
		return "", errors.Join(ErrEncryptionFailed, ErrMissingKeyMaterial)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	block, err := aes.NewCipher(deriveKey(keyMaterial, salt))
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// Blob layout: salt(16) || iv(16) || ciphertext || tag(16).
	// Seal appends ciphertext+tag to the salt||iv prefix.
	blob := make([]byte, 0, minBlobSize+len(plaintext))
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = aesGCM.Seal(blob, iv, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt reverses Encrypt. It splits the blob at fixed offsets, re-derives
// the key from the embedded salt and the supplied keyMaterial, and performs
// authenticated decryption.
//
// A blob that cannot even be parsed (bad base64, shorter than
// salt+iv+tag) fails with ErrMalformedCiphertext. A structurally valid blob
// whose authentication tag does not verify — wrong key material, tampering,
// corruption — fails with ErrDecryptionFailed. Garbage plaintext is never
// returned.
func Decrypt(blob string, keyMaterial string) (string, error) {
	if keyMaterial == "" {
		return "", errors.Join(ErrDecryptionFailed, ErrMissingKeyMaterial)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", errors.Join(ErrMalformedCiphertext, err)
	}
	if len(raw) < minBlobSize {
		return "", ErrMalformedCiphertext
	}

	salt := raw[:SaltSize]
	iv := raw[SaltSize : SaltSize+IVSize]
	sealed := raw[SaltSize+IVSize:]

	block, err := aes.NewCipher(deriveKey(keyMaterial, salt))
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	plaintext, err := aesGCM.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
