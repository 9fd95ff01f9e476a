package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyTimeout caps how long a single ID-token verification may take.
// Exceeding it maps to a 408 at the API layer, distinct from a 401.
const VerifyTimeout = 15 * time.Second

var (
	ErrVerifyTimeout = errors.New("identity: token verification timed out")
	ErrInvalidToken  = errors.New("identity: invalid token")
)

// LocalIssuer marks first-party ID tokens minted by our own login route.
const LocalIssuer = "highlaunchpad"

// Identity is the subject extracted from a verified ID token.
type Identity struct {
	UID      string
	Email    string
	Provider string // "local" | "firebase"
}

// Verifier checks ID tokens from either the managed identity provider
// (securetoken issuer) or our own login route. Construct with New and
// pass explicitly; there is no package-level singleton.
type Verifier struct {
	projectID string
	jwtSecret []byte

	// resolved lazily because the provider endpoint needs network access
	remote *oidc.IDTokenVerifier
}

func New(projectID, jwtSecret string) *Verifier {
	return &Verifier{
		projectID: projectID,
		jwtSecret: []byte(jwtSecret),
	}
}

// Verify validates raw and returns the identity it asserts.
// Local HS256 tokens are checked first; anything else goes to the
// provider's OIDC endpoint, bounded by VerifyTimeout.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()

	if ident, err := v.verifyLocal(raw); err == nil {
		return ident, nil
	}

	ident, err := v.verifyRemote(ctx, raw)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrVerifyTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return ident, nil
}

func (v *Verifier) verifyLocal(raw string) (*Identity, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.jwtSecret, nil
	}, jwt.WithIssuer(LocalIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{UID: sub, Email: email, Provider: "local"}, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, raw string) (*Identity, error) {
	if v.projectID == "" {
		return nil, fmt.Errorf("identity provider not configured")
	}

	if v.remote == nil {
		issuer := "https://securetoken.google.com/" + v.projectID
		provider, err := oidc.NewProvider(ctx, issuer)
		if err != nil {
			return nil, err
		}
		v.remote = provider.Verifier(&oidc.Config{ClientID: v.projectID})
	}

	idToken, err := v.remote.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	return &Identity{UID: idToken.Subject, Email: claims.Email, Provider: "firebase"}, nil
}

// MintLocalIDToken signs a first-party ID token for a local-credentials
// login. The front end feeds it straight back into session-login, the
// same way a provider-issued token would be.
func MintLocalIDToken(jwtSecret string, uid, email string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   LocalIssuer,
		"sub":   uid,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(jwtSecret))
}
