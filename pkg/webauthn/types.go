package webauthn

import (
	"encoding/binary"
	"encoding/json"
	"time"
)

// Attachment and verification policy values mirrored from the WebAuthn
// authenticator-selection vocabulary.
const (
	AttachmentPlatform = "platform" // Face ID, Touch ID, Windows Hello class

	ResidentKeyRequired = "required" // discoverable credentials (passkeys)

	UserVerificationRequired  = "required"
	UserVerificationPreferred = "preferred"

	// DefaultTimeout is how long the client is given to complete the
	// authenticator ceremony.
	DefaultTimeout = 60 * time.Second
)

// Client data types distinguishing the two ceremonies. A registration
// signature can never be replayed as an authentication one.
const (
	ceremonyCreate = "webauthn.create"
	ceremonyGet    = "webauthn.get"
)

// Registration is the stored record for one enrolled authenticator. An
// account may hold many, one per device. SignCount is the only mutable
// field: it increases on every successful authentication and is the
// anti-cloning signal.
type Registration struct {
	CredentialID string   `json:"credential_id"`
	PublicKey    []byte   `json:"public_key"` // PKIX, ASN.1 DER encoded ECDSA P-256 key
	SignCount    uint32   `json:"sign_count"`
	Transports   []string `json:"transports,omitempty"`
}

// ClientData is the contextual binding an authenticator signs over: which
// ceremony it performed, for which challenge, from which origin.
type ClientData struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Origin    string `json:"origin"`
}

// RegistrationResponse is the typed attestation payload produced by the
// client at the end of a registration ceremony. Boundary validation happens
// in FinishRegistration before any cryptography.
type RegistrationResponse struct {
	CredentialID string     `json:"credential_id"`
	PublicKey    []byte     `json:"public_key"` // PKIX, ASN.1 DER encoded
	ClientData   ClientData `json:"client_data"`
	Signature    []byte     `json:"signature"` // ASN.1 ECDSA over SHA-256 of SigningPayload
	SignCount    uint32     `json:"sign_count"`
	Transports   []string   `json:"transports,omitempty"`
}

// SigningPayload returns the exact bytes the authenticator signed: the
// JSON-encoded client data.
func (r RegistrationResponse) SigningPayload() ([]byte, error) {
	return json.Marshal(r.ClientData)
}

// AuthenticationResponse is the typed assertion payload produced by the
// client at the end of an authentication ceremony.
type AuthenticationResponse struct {
	CredentialID string     `json:"credential_id"`
	ClientData   ClientData `json:"client_data"`
	Signature    []byte     `json:"signature"`
	SignCount    uint32     `json:"sign_count"`
}

// SigningPayload returns the bytes the authenticator signed: the
// JSON-encoded client data followed by the big-endian signature counter.
// Covering the counter makes a tampered counter fail signature
// verification, mirroring the authenticator-data semantics of the
// underlying protocol.
func (a AuthenticationResponse) SigningPayload() ([]byte, error) {
	data, err := json.Marshal(a.ClientData)
	if err != nil {
		return nil, err
	}
	return binary.BigEndian.AppendUint32(data, a.SignCount), nil
}

// CredentialDescriptor references an already-registered credential in
// ceremony options.
type CredentialDescriptor struct {
	ID         string   `json:"id"`
	Transports []string `json:"transports,omitempty"`
}

// RegistrationOptions is the public payload handed to the client to start a
// registration ceremony.
type RegistrationOptions struct {
	Challenge          string                 `json:"challenge"`
	RPID               string                 `json:"rp_id"`
	RPName             string                 `json:"rp_name"`
	UserID             string                 `json:"user_id"`
	UserName           string                 `json:"user_name"`
	UserDisplayName    string                 `json:"user_display_name"`
	ExcludeCredentials []CredentialDescriptor `json:"exclude_credentials"`
	Selection          AuthenticatorSelection `json:"authenticator_selection"`
	Timeout            time.Duration          `json:"timeout"`
}

// AuthenticatorSelection expresses which class of authenticator the relying
// party prefers for registration.
type AuthenticatorSelection struct {
	AuthenticatorAttachment string `json:"authenticator_attachment,omitempty"`
	ResidentKey             string `json:"resident_key"`
	UserVerification        string `json:"user_verification"`
}

// AuthenticationOptions is the public payload handed to the client to start
// an authentication ceremony. An empty AllowCredentials list enables the
// discoverable-credential (usernameless) flow.
type AuthenticationOptions struct {
	Challenge        string                 `json:"challenge"`
	RPID             string                 `json:"rp_id"`
	AllowCredentials []CredentialDescriptor `json:"allow_credentials"`
	UserVerification string                 `json:"user_verification"`
	Timeout          time.Duration          `json:"timeout"`
}
