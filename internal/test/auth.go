package test

import (
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// IssuedToken records a token request made through StrategyStub.
type IssuedToken struct {
	Claims pkgAuth.Claims
	TTL    time.Duration
}

// StrategyStub encodes claims as "role|subject|email" and records issued TTLs.
type StrategyStub struct {
	IssueFn func(pkgAuth.Claims, time.Duration) (string, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
	NameVal string
	Issued  *[]IssuedToken
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(claims pkgAuth.Claims, ttl time.Duration) (string, error) {
	if s.Issued != nil {
		*s.Issued = append(*s.Issued, IssuedToken{Claims: claims, TTL: ttl})
	}
	if s.IssueFn != nil {
		return s.IssueFn(claims, ttl)
	}
	return fmt.Sprintf("%s|%s|%s", claims.Role, claims.Subject, claims.Email), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.SplitN(token, "|", 3)
	if len(parts) != 3 {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.Claims{Role: pkgAuth.Role(parts[0]), Subject: parts[1], Email: parts[2]}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Claims  *pkgAuth.Claims
	Err     error
	ParseFn func(string) (*pkgAuth.Claims, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Claims == nil {
		return &pkgAuth.Claims{Subject: "1", Role: pkgAuth.RoleStudent}, nil
	}
	return s.Claims, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
