package webauthn

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
)

// Service verifies biometric/hardware-authenticator ceremonies for one
// relying party. It is stateless: challenges come from the caller (see
// pkg/challenge for the store) and registrations come from the caller's
// persistence layer.
type Service struct {
	cfg Config
}

// New creates a verification service bound to the given relying-party
// identity.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// BeginRegistration builds the public options for a registration ceremony.
// Credentials the account already holds are put on the exclusion list so
// the same physical authenticator cannot be enrolled twice; platform-bound
// authenticators are preferred and user verification is required, matching
// a passkey-style enrollment.
func (s *Service) BeginRegistration(challenge, userID, userName, userDisplayName string, existing []Registration) RegistrationOptions {
	exclude := make([]CredentialDescriptor, 0, len(existing))
	for _, reg := range existing {
		exclude = append(exclude, CredentialDescriptor{
			ID:         reg.CredentialID,
			Transports: reg.Transports,
		})
	}

	return RegistrationOptions{
		Challenge:          challenge,
		RPID:               s.cfg.RPID,
		RPName:             s.cfg.RPName,
		UserID:             userID,
		UserName:           userName,
		UserDisplayName:    userDisplayName,
		ExcludeCredentials: exclude,
		Selection: AuthenticatorSelection{
			AuthenticatorAttachment: AttachmentPlatform,
			ResidentKey:             ResidentKeyRequired,
			UserVerification:        UserVerificationRequired,
		},
		Timeout: DefaultTimeout,
	}
}

// FinishRegistration verifies an attestation response against the expected
// challenge and the relying-party identity, and returns the registration
// record to persist. There is exactly one success path; any mismatch fails
// with ErrRegistrationFailed.
func (s *Service) FinishRegistration(resp RegistrationResponse, expectedChallenge string) (*Registration, error) {
	if resp.CredentialID == "" || len(resp.PublicKey) == 0 || len(resp.Signature) == 0 {
		return nil, errors.Join(ErrRegistrationFailed, ErrIncompleteResponse)
	}
	if resp.ClientData.Type != ceremonyCreate {
		return nil, errors.Join(ErrRegistrationFailed, ErrCeremonyMismatch)
	}
	if resp.ClientData.Challenge == "" || resp.ClientData.Challenge != expectedChallenge {
		return nil, errors.Join(ErrRegistrationFailed, ErrChallengeMismatch)
	}
	if resp.ClientData.Origin != s.cfg.Origin {
		return nil, errors.Join(ErrRegistrationFailed, ErrOriginMismatch)
	}

	pub, err := parsePublicKey(resp.PublicKey)
	if err != nil {
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	payload, err := resp.SigningPayload()
	if err != nil {
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	digest := sha256.Sum256(payload)
	if !ecdsa.VerifyASN1(pub, digest[:], resp.Signature) {
		return nil, errors.Join(ErrRegistrationFailed, ErrSignatureInvalid)
	}

	return &Registration{
		CredentialID: resp.CredentialID,
		PublicKey:    resp.PublicKey,
		SignCount:    resp.SignCount,
		Transports:   resp.Transports,
	}, nil
}

// BeginAuthentication builds the public options for an authentication
// ceremony, listing the credential IDs the account may answer with. Passing
// no registrations produces an empty allow-list, which is the discoverable
// (usernameless) flow.
func (s *Service) BeginAuthentication(challenge string, registrations []Registration) AuthenticationOptions {
	allowed := make([]CredentialDescriptor, 0, len(registrations))
	for _, reg := range registrations {
		allowed = append(allowed, CredentialDescriptor{
			ID:         reg.CredentialID,
			Transports: reg.Transports,
		})
	}

	verification := UserVerificationPreferred
	if len(allowed) == 0 {
		// Usernameless flow: the credential is the only identity proof,
		// so the authenticator must verify the user itself.
		verification = UserVerificationRequired
	}

	return AuthenticationOptions{
		Challenge:        challenge,
		RPID:             s.cfg.RPID,
		AllowCredentials: allowed,
		UserVerification: verification,
		Timeout:          DefaultTimeout,
	}
}

// FinishAuthentication verifies an assertion response against the stored
// registration and the expected challenge. On success it returns the new
// signature counter, which the caller must persist before granting access.
//
// The reported counter must be strictly greater than the stored one. A
// cloned authenticator replaying old state presents a counter the server
// has already seen, so a non-increasing counter is rejected even when the
// signature itself verifies. On any failure the stored counter must not be
// advanced.
func (s *Service) FinishAuthentication(resp AuthenticationResponse, expectedChallenge string, reg Registration) (uint32, error) {
	if resp.CredentialID == "" || len(resp.Signature) == 0 {
		return 0, errors.Join(ErrAuthenticationFailed, ErrIncompleteResponse)
	}
	if resp.CredentialID != reg.CredentialID {
		return 0, errors.Join(ErrAuthenticationFailed, ErrUnknownCredential)
	}
	if resp.ClientData.Type != ceremonyGet {
		return 0, errors.Join(ErrAuthenticationFailed, ErrCeremonyMismatch)
	}
	if resp.ClientData.Challenge == "" || resp.ClientData.Challenge != expectedChallenge {
		return 0, errors.Join(ErrAuthenticationFailed, ErrChallengeMismatch)
	}
	if resp.ClientData.Origin != s.cfg.Origin {
		return 0, errors.Join(ErrAuthenticationFailed, ErrOriginMismatch)
	}

	pub, err := parsePublicKey(reg.PublicKey)
	if err != nil {
		return 0, errors.Join(ErrAuthenticationFailed, err)
	}

	payload, err := resp.SigningPayload()
	if err != nil {
		return 0, errors.Join(ErrAuthenticationFailed, err)
	}

	digest := sha256.Sum256(payload)
	if !ecdsa.VerifyASN1(pub, digest[:], resp.Signature) {
		return 0, errors.Join(ErrAuthenticationFailed, ErrSignatureInvalid)
	}

	if resp.SignCount <= reg.SignCount {
		return 0, errors.Join(ErrAuthenticationFailed, ErrCounterNotIncreasing)
	}

	return resp.SignCount, nil
}

// parsePublicKey decodes a PKIX-encoded key and requires it to be ECDSA.
func parsePublicKey(der []byte) (*ecdsa.PublicKey, error) {
	keyAny, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedPublicKey, err)
	}
	pub, ok := keyAny.(*ecdsa.PublicKey)
	if !ok {
		return nil, ErrUnsupportedPublicKey
	}
	return pub, nil
}
