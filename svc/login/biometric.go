package login

import (
	"github.com/google/uuid"

	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/challenge"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/webauthn"
)

// BeginBiometricRegistration starts enrolling a new device authenticator
// for an account. Already-registered credentials are excluded so the same
// physical key cannot be enrolled twice.
func (s *Service) BeginBiometricRegistration(accountID, accountName, displayName string, existing []webauthn.Registration) (*webauthn.RegistrationOptions, error) {
	ch, err := s.challenges.Issue(accountID, challenge.PurposeRegistration)
	if err != nil {
		return nil, err
	}

	opts := s.authenticators.BeginRegistration(ch.Nonce, accountID, accountName, displayName, existing)
	return &opts, nil
}

// FinishBiometricRegistration consumes the pending challenge — before
// verification, success or not — verifies the attestation response, and
// returns the registration record for the identity store to persist.
// Reusing a consumed or expired challenge fails with
// challenge.ErrExpiredOrConsumed without touching any cryptography.
func (s *Service) FinishBiometricRegistration(accountID string, resp webauthn.RegistrationResponse, existing []webauthn.Registration) (*webauthn.Registration, error) {
	ch, err := s.challenges.Consume(accountID, challenge.PurposeRegistration)
	if err != nil {
		return nil, err
	}

	for _, reg := range existing {
		if reg.CredentialID == resp.CredentialID {
			return nil, ErrCredentialAlreadyRegistered
		}
	}

	reg, err := s.authenticators.FinishRegistration(resp, ch.Nonce)
	if err != nil {
		return nil, err
	}

	s.log.Info("biometric authenticator registered", "account", accountID)
	return reg, nil
}

// BeginBiometricLogin starts an authentication ceremony for an account's
// registered authenticators.
func (s *Service) BeginBiometricLogin(accountID string, registrations []webauthn.Registration) (*webauthn.AuthenticationOptions, error) {
	ch, err := s.challenges.Issue(accountID, challenge.PurposeAuthentication)
	if err != nil {
		return nil, err
	}

	opts := s.authenticators.BeginAuthentication(ch.Nonce, registrations)
	return &opts, nil
}

// BeginUsernamelessLogin starts a discoverable-credential ceremony where
// the account is not yet known. The returned flow ID keys the challenge;
// the client's chosen credential identifies the account at finish time.
func (s *Service) BeginUsernamelessLogin() (string, *webauthn.AuthenticationOptions, error) {
	flowID := uuid.NewString()

	ch, err := s.challenges.Issue(flowID, challenge.PurposeAuthentication)
	if err != nil {
		return "", nil, err
	}

	opts := s.authenticators.BeginAuthentication(ch.Nonce, nil)
	return flowID, &opts, nil
}

// BiometricLoginResult is the terminal outcome of a biometric login.
// NewSignCount must be persisted on the matching registration before the
// token is released to the client; a later assertion reporting a smaller
// counter is how a cloned device gets caught.
type BiometricLoginResult struct {
	Token        string
	NewSignCount uint32
}

// FinishBiometricLogin consumes the pending challenge, verifies the
// assertion against the account's registrations, and mints a session. The
// counter is never advanced on a failed verification.
func (s *Service) FinishBiometricLogin(challengeKey, subjectID, role string, resp webauthn.AuthenticationResponse, registrations []webauthn.Registration) (*BiometricLoginResult, error) {
	ch, err := s.challenges.Consume(challengeKey, challenge.PurposeAuthentication)
	if err != nil {
		return nil, err
	}

	var matched *webauthn.Registration
	for i := range registrations {
		if registrations[i].CredentialID == resp.CredentialID {
			matched = &registrations[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrUnknownCredential
	}

	newCount, err := s.authenticators.FinishAuthentication(resp, ch.Nonce, *matched)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(subjectID, role, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info("biometric login succeeded", "subject", subjectID)
	return &BiometricLoginResult{
		Token:        token,
		NewSignCount: newCount,
	}, nil
}
