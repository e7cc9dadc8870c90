// Package auth provides password hashing, JWT issuing and the HTTP
// middleware that turns a request's token into an Identity.
//
// AUTHENTICATION FLOW OVERVIEW:
//  1. POST /login (or /signup) succeeds → the service opens a Session and
//     asks TokenService for a JWT naming the user and that session
//  2. The handler stores the JWT in an HttpOnly "token" cookie
//  3. On later requests RequireAuth reads the cookie (or a Bearer header),
//     and hands it to a Resolver. The Resolver checks the signature, then
//     checks that the session it names is still open
//  4. POST /logout closes the session, so its JWT stops working even
//     before it expires
//
// JWT STRUCTURE:
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header:  {"alg":"HS256","typ":"JWT"}
//	- Payload: {"sub":"42","jti":"cv37rs3pp9olc6atsptg","role":"Bookie","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// "jti" carries the session token, an opaque xid. The integer session id
// never leaves the server.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakif/bookie/internal/model"
)

const issuer = "bookie"

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService that signs with secret and issues
// tokens valid for ttl.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Claims is the JWT payload. Subject holds the user id and ID (jti) holds
// the session token.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the user's primary key.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("auth: token subject %q is not a user id", c.Subject)
	}
	return id, nil
}

// SessionToken is the xid of the session the token was issued for.
func (c *Claims) SessionToken() string { return c.ID }

// Generate creates and signs a JWT for the given user and session.
func (s *TokenService) Generate(userID int64, role model.Role, sessionToken string) (string, error) {
	return s.generate(userID, role, sessionToken, s.ttl)
}

func (s *TokenService) generate(userID int64, role model.Role, sessionToken string, d time.Duration) (string, error) {
	now := time.Now()

	c := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionToken,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a JWT string and returns its claims.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid
//   - Token is not expired
//   - Issuer is "bookie"
//   - Algorithm is HS256 (prevents algorithm confusion attacks)
//
// On top of that the subject must be a user id and the jti must be set.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	if _, err := c.UserID(); err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, fmt.Errorf("auth: token has no session")
	}
	return c, nil
}
