// Package session supplies bearer tokens to the sync client. Tokens are
// always injected explicitly; the engine never reads them from ambient
// global state.
package session

import (
	"fmt"

	"github.com/quickhire/profile-engine/internal/domain"
)

// Static returns a TokenSource that always yields the given token, or an
// unauthorized error when it is empty. This is the common case: an outer
// auth layer performed the login and handed the engine its token.
func Static(token string) domain.TokenSource {
	return Func(func(domain.Context) (string, error) {
		if token == "" {
			return "", fmt.Errorf("op=session.static: %w", domain.ErrUnauthorized)
		}
		return token, nil
	})
}

// Func adapts a plain function to domain.TokenSource, for callers whose
// auth layer refreshes tokens on demand.
type Func func(ctx domain.Context) (string, error)

// Token implements domain.TokenSource.
func (f Func) Token(ctx domain.Context) (string, error) { return f(ctx) }
