// Package secretcipher converts plaintext vault secrets into self-describing
// encrypted blobs and back.
//
// Every blob is the base64 encoding of salt(16) || iv(16) || ciphertext ||
// tag(16). The AES-256 key is derived from the caller-supplied key material
// and the embedded salt with PBKDF2-SHA256 at 100 000 iterations, so no
// per-record key table is needed; encryption is AES-256-GCM, which provides
// confidentiality and tamper detection in a single primitive.
//
// # Usage
//
//	blob, err := secretcipher.Encrypt("hunter2", keyMaterial)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := secretcipher.Decrypt(blob, keyMaterial)
//	switch {
//	case errors.Is(err, secretcipher.ErrMalformedCiphertext):
//	    // not a valid blob at all
//	case errors.Is(err, secretcipher.ErrDecryptionFailed):
//	    // wrong key material, or the blob was tampered with
//	}
//
// # Error Handling
//
// Decrypt distinguishes "this isn't even a valid blob"
// (ErrMalformedCiphertext) from "the key is wrong or the data was tampered
// with" (ErrDecryptionFailed). Both are sentinels matchable with errors.Is;
// error messages never contain key bytes or plaintext.
//
// # Performance Considerations
//
// Key derivation is intentionally slow (hundreds of milliseconds on common
// hardware). Run Encrypt/Decrypt on a worker goroutine if the calling
// context is latency-sensitive.
//
// # Key Material
//
// The package is agnostic about where key material comes from, but its
// security ceiling is the secrecy of that input. A stable, user-visible
// account identifier is weak key material: anyone who can read the store
// and knows the identifier scheme can re-derive the key. Prefer a
// user-held master password or a server-side secret that never appears in
// stored records.
package secretcipher
