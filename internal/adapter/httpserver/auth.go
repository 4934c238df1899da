package httpserver

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"github.com/quickhire/profile-engine/internal/domain"
)

// Argon2Params defines parameters for Argon2id token hashing.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

var defaultArgon2Params = Argon2Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 2,
	SaltLen:     16,
	KeyLen:      32,
}

// HashToken creates an Argon2id hash of the shared service token, in the
// form stored in SERVICE_TOKEN_HASH.
func HashToken(token string, params Argon2Params) (string, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(token), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLen)
	// Format: argon2id$iterations$memory$parallelism$salt$hash (base64 raw std)
	encoded := fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		params.Iterations,
		params.Memory,
		params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// VerifyToken verifies a token against its Argon2id hash.
func VerifyToken(token, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return false
	}
	iters, err1 := parseUint32(parts[1])
	mem, err2 := parseUint32(parts[2])
	par64, err3 := parseUint32(parts[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	var par uint8
	if par64 > math.MaxUint8 {
		par = math.MaxUint8
	} else {
		par = uint8(par64)
	}
	actualHash := argon2.IDKey([]byte(token), salt, iters, mem, par, defaultArgon2Params.KeyLen)
	return subtle.ConstantTimeCompare(actualHash, expectedHash) == 1
}

// TokenIssuer mints and verifies the bearer tokens handed to clients. JWTs
// are issued when a signing secret is configured; otherwise tokens are
// opaque and tracked by the session store.
type TokenIssuer struct {
	Secret   []byte
	TTL      time.Duration
	Sessions domain.SessionStore
}

// Issue returns a bearer token for the subject.
func (t TokenIssuer) Issue(ctx domain.Context, subject string) (string, error) {
	if len(t.Secret) > 0 {
		claims := jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.TTL)),
		}
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := tok.SignedString(t.Secret)
		if err != nil {
			return "", fmt.Errorf("op=auth.issue: %w", err)
		}
		return signed, nil
	}
	if t.Sessions == nil {
		return "", fmt.Errorf("op=auth.issue: %w", domain.ErrUnauthorized)
	}
	return t.Sessions.Issue(ctx, subject, t.TTL)
}

// Resolve maps a bearer token back to its subject, or ErrUnauthorized.
func (t TokenIssuer) Resolve(ctx domain.Context, token string) (string, error) {
	if len(t.Secret) > 0 && strings.Count(token, ".") == 2 {
		parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
			}
			return t.Secret, nil
		})
		if err != nil || !parsed.Valid {
			return "", domain.ErrUnauthorized
		}
		claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			return "", domain.ErrUnauthorized
		}
		return claims.Subject, nil
	}
	// JWT-only deployments carry no session store; anything that is not a
	// verifiable JWT is simply not a token we issued.
	if t.Sessions == nil {
		return "", domain.ErrUnauthorized
	}
	return t.Sessions.Resolve(ctx, token)
}

// BearerAuth rejects requests without a resolvable bearer token and stores
// the subject on the request context.
func (t TokenIssuer) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, r, domain.ErrUnauthorized)
			return
		}
		subject, err := t.Resolve(r.Context(), token)
		if err != nil {
			writeError(w, r, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	})
}

// parseUint32 parses a decimal string into uint32; returns error on failure.
func parseUint32(s string) (uint32, error) {
	x, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse")
	}
	return uint32(x), nil
}
