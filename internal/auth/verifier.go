package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// JWTVerifier verifies first-party session tokens and checks they have not
// been revoked.
type JWTVerifier struct {
	Secret   string
	Sessions *SessionCache
}

func (v *JWTVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	claims, err := ParseToken(v.Secret, rawToken)
	if err != nil {
		return nil, err
	}
	if v.Sessions != nil {
		live, err := v.Sessions.IsLive(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("session lookup failed: %w", err)
		}
		if !live {
			return nil, fmt.Errorf("%w: session revoked or expired", ErrInvalidToken)
		}
	}
	return claims, nil
}

// OIDCVerifier accepts ID tokens from an external identity provider, used
// for OAuth redirect sign-ins. Users arriving this way get the plain user
// role.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuer string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{SkipClientIDCheck: true}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var idClaims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&idClaims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse claims", ErrInvalidToken)
	}

	return &Claims{
		UserID: idClaims.Sub,
		Email:  idClaims.Email,
		Role:   "user",
	}, nil
}

// FallbackVerifier tries the first-party verifier, then the OIDC verifier
// when one is configured.
type FallbackVerifier struct {
	Primary   Verifier
	Secondary Verifier
}

func (v *FallbackVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	claims, err := v.Primary.Verify(ctx, rawToken)
	if err == nil {
		return claims, nil
	}
	if v.Secondary == nil {
		return nil, err
	}
	return v.Secondary.Verify(ctx, rawToken)
}
