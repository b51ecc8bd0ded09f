package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the role claim carried by admin tokens.
const AdminRole = "admin"

// AdminCredential is a proof of administrator identity. It is either a
// TokenCredential or a HeaderCredential.
type AdminCredential interface {
	adminCredential()
}

// TokenCredential is a bearer token issued by AdminGate.Login.
type TokenCredential struct {
	Token string
}

// HeaderCredential is the email/password pair sent as request headers.
type HeaderCredential struct {
	Email    string
	Password string
}

func (TokenCredential) adminCredential()  {}
func (HeaderCredential) adminCredential() {}

// AdminIdentity is the verified administrator.
type AdminIdentity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminConfig configures an AdminGate. PasswordHash, a bcrypt hash, takes
// precedence over Password.
type AdminConfig struct {
	Email        string
	Password     string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

// AdminGate verifies the single administrator identity.
type AdminGate struct {
	emailSum     [sha256.Size]byte
	email        string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAdminGate builds a gate from cfg. A plaintext password is hashed once
// here so requests only ever compare hashes.
func NewAdminGate(cfg AdminConfig) (*AdminGate, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AdminGate{
		emailSum:     sha256.Sum256([]byte(cfg.Email)),
		email:        cfg.Email,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login exchanges the admin email/password for a token.
func (g *AdminGate) Login(email, password string) (string, *AdminIdentity, error) {
	if !g.matchesCredentials(email, password) {
		return "", nil, fmt.Errorf("%w: invalid admin credentials", ErrUnauthorized)
	}

	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": g.email,
		"role":  AdminRole,
		"exp":   now.Add(g.ttl).Unix(),
		"iat":   now.Unix(),
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, g.identity(), nil
}

// Verify checks cred against the administrator identity. Every failure is
// reported as the same ErrUnauthorized.
func (g *AdminGate) Verify(cred AdminCredential) (*AdminIdentity, error) {
	var ok bool
	switch c := cred.(type) {
	case TokenCredential:
		ok = g.verifyToken(c.Token)
	case HeaderCredential:
		ok = g.matchesCredentials(c.Email, c.Password)
	}
	if !ok {
		return nil, fmt.Errorf("%w as admin", ErrUnauthorized)
	}
	return g.identity(), nil
}

func (g *AdminGate) verifyToken(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	claims, err := parseHMAC(tokenString, g.secret)
	if err != nil {
		return false
	}
	if !claims.VerifyExpiresAt(g.now().Unix(), true) {
		return false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return g.matchesEmail(email) && role == AdminRole
}

// matchesCredentials always runs the bcrypt comparison so a wrong email
// costs as much as a wrong password.
func (g *AdminGate) matchesCredentials(email, password string) bool {
	emailOK := g.matchesEmail(email)
	passwordOK := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
	return emailOK && passwordOK
}

func (g *AdminGate) matchesEmail(email string) bool {
	sum := sha256.Sum256([]byte(email))
	return subtle.ConstantTimeCompare(sum[:], g.emailSum[:]) == 1
}

func (g *AdminGate) identity() *AdminIdentity {
	return &AdminIdentity{Email: g.email, Role: AdminRole}
}
