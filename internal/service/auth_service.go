package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"course_service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL    = 90 * time.Minute
	tokenIssuer = "self"
	rsaKeyBits  = 2048
)

// Domain errors for auth flows.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// Credential is a seed entry unmarshalled from configuration. The password is
// plaintext in the config file and is bcrypt-hashed during seeding; only the
// hash is kept in memory.
type Credential struct {
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	Authorities []string `mapstructure:"authorities"`
	Roles       []string `mapstructure:"roles"`
}

// TokenClaims is the claim set carried by issued tokens. Scope holds the
// principal's authorities space-joined at issuance time.
type TokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// AuthService holds the fixed credential store and the process-lifetime RSA
// key pair used to sign and verify tokens. The key is generated at startup
// and never persisted, so restarting the process invalidates all previously
// issued tokens.
type AuthService struct {
	principals map[string]models.Principal
	privateKey *rsa.PrivateKey
}

var _ Authorization = (*AuthService)(nil)

// NewAuthService hashes the seeded passwords, generates the signing key pair
// and returns a ready credential store / token issuer.
func NewAuthService(creds []Credential) (*AuthService, error) {
	if len(creds) == 0 {
		return nil, errors.New("no credentials configured")
	}

	principals := make(map[string]models.Principal, len(creds))
	for _, c := range creds {
		username := strings.TrimSpace(c.Username)
		if username == "" {
			return nil, errors.New("credential with empty username")
		}
		if _, exists := principals[username]; exists {
			return nil, fmt.Errorf("duplicate credential for user %q", username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for user %q: %w", username, err)
		}
		principals[username] = models.Principal{
			Username:     username,
			PasswordHash: string(hash),
			Authorities:  c.Authorities,
			Roles:        c.Roles,
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key pair: %w", err)
	}

	return &AuthService{principals: principals, privateKey: key}, nil
}

// ValidateCredentials checks a username/password pair against the credential
// store and returns the matching principal.
func (s *AuthService) ValidateCredentials(username, password string) (*models.Principal, error) {
	p, ok := s.principals[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return &p, nil
}

// Authenticate validates credentials and mints a signed bearer token encoding
// the principal's authorities as a space-joined scope claim.
func (s *AuthService) Authenticate(username, password string) (string, error) {
	p, err := s.ValidateCredentials(username, password)
	if err != nil {
		return "", err
	}
	return s.issueToken(*p)
}

// ParseToken verifies the token's RS256 signature and expiry and returns its
// claims. There is no audience check and no revocation list; a token is valid
// until it expires or the process (and with it the key pair) restarts.
func (s *AuthService) ParseToken(accessToken string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueToken signs a fresh token for the principal. The scope claim reflects
// the authorities granted at issuance time; it is not re-evaluated later.
func (s *AuthService) issueToken(p models.Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &TokenClaims{
		Scope: strings.Join(p.Authorities, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token for user %q: %w", p.Username, err)
	}
	return signed, nil
}
