package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the self-contained proof of identity minted after a successful
// authentication path. It is never persisted; verification is a pure
// function of the token string and the signing key.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Service signs and verifies session tokens with HMAC-SHA256. The signing
// key lives only in memory.
type Service struct {
	signingKey []byte
	defaultTTL time.Duration
}

// New creates a session issuer from the given configuration.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		defaultTTL: cfg.TTL,
	}, nil
}

// Issue mints a signed token binding the subject and role for ttl. A
// non-positive ttl falls back to the configured default.
func (s *Service) Issue(subjectID, role string, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// claims. Expired, malformed, mis-signed, and wrong-algorithm tokens all
// fail identically with ErrInvalidSession so a caller probing the endpoint
// cannot tell which check rejected it.
func (s *Service) Verify(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		// Pinning the method prevents algorithm-confusion attacks
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidSession
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidSession
	}

	return claims, nil
}
