package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel error for invalid tokens
    "fmt"    // error wrapping with the underlying verification failure
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  The token is stateless: the server keeps only
// the signing secret, never the token itself, and verifies each presented
// token structurally and cryptographically.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by VerifyAccessToken for any token that cannot
// be trusted: structural corruption, signature mismatch, wrong signing
// algorithm or an expiry in the past.  The wrapped reason is safe to report
// to the client for diagnostics; it never contains the signing secret.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an admin.  It takes the
// signing secret, the admin ID and a TTL in minutes, and returns an
// AccessToken containing the signed token and its expiration time.  The JWT
// carries standard claims: subject (sub), expiration (exp) and issued at
// (iat).
func NewAccessToken(secret string, adminID uint64, ttlMin int) (AccessToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": adminID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken checks signature integrity and expiry of a presented
// token and returns the admin ID from the subject claim.  Every failure path
// yields an error wrapping ErrInvalidToken; a malformed token is never
// partially trusted.
func VerifyAccessToken(secret, raw string) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything other than HMAC; an attacker
        // must not be able to pick the verification algorithm.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
        }
        return []byte(secret), nil
    })
    if err != nil {
        return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
    }
    if !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, fmt.Errorf("%w: unexpected claims format", ErrInvalidToken)
    }
    // JWT numbers decode as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
    }
    return uint64(sub), nil
}
