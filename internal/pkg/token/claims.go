package token

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	claimSubject = "sub"
	claimExpiry  = "exp"
)

// Claims is the structured payload carried inside a token.
//
// Subject and ExpiresAt are the fields the service reads back; anything else a
// caller adds travels through Extra untouched so unknown claims round-trip.
type Claims struct {
	// Subject is the account identity (the email used as primary key).
	Subject string
	// ExpiresAt is the Unix second after which the token is rejected.
	// Zero means the token never expires.
	ExpiresAt int64
	// Extra holds additional claims opaque to the codec.
	Extra map[string]any
}

// canonical returns the claims as a flat map ready for canonical serialization.
// Reserved keys always come from the typed fields, never from Extra.
func (c Claims) canonical() map[string]any {
	m := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		if k == claimSubject || k == claimExpiry {
			continue
		}
		m[k] = v
	}

	m[claimSubject] = c.Subject
	if c.ExpiresAt != 0 {
		m[claimExpiry] = c.ExpiresAt
	}

	return m
}

func claimsFromMap(m map[string]any) (Claims, error) {
	var c Claims

	if raw, ok := m[claimSubject]; ok {
		sub, ok := raw.(string)
		if !ok {
			return Claims{}, fmt.Errorf("sub claim must be a string, got %T", raw)
		}
		c.Subject = sub
	}

	if raw, ok := m[claimExpiry]; ok {
		num, ok := raw.(json.Number)
		if !ok {
			return Claims{}, fmt.Errorf("exp claim must be a number, got %T", raw)
		}
		exp, err := num.Int64()
		if err != nil {
			return Claims{}, fmt.Errorf("exp claim must be an integer: %w", err)
		}
		c.ExpiresAt = exp
	}

	for k, v := range m {
		if k == claimSubject || k == claimExpiry {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[k] = v
	}

	return c, nil
}

type authContextKey struct{}

// GetAuth returns the token claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(authContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores token claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, authContextKey{}, clm)
}
