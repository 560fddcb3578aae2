package backend

import (
	"context"
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// storeTokenSource hands out the stored access token, refreshing it through the
// backend once it is within the leeway of its exp claim
type storeTokenSource struct {
	ctx    context.Context
	client *Client
}

// TokenSource returns an oauth2.TokenSource reading from the client's credential store.
// The store is read on every call so a login or logout elsewhere is seen straight away.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &storeTokenSource{ctx: ctx, client: c}
}

func (c *Client) authorisedClient(ctx context.Context) *http.Client {
	return &http.Client{
		Timeout: c.http.Timeout,
		Transport: &oauth2.Transport{
			Source: c.TokenSource(ctx),
			Base:   c.http.Transport,
		},
	}
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	c := s.client
	access, ok := c.store.GetAccessToken(s.ctx)
	if !ok {
		return nil, apperrors.ErrNotLoggedIn
	}
	expiry := AccessTokenExpiry(access)
	if !c.needsRefresh(expiry) {
		return bearer(access, expiry), nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// another request may have refreshed while this one waited
	access, ok = c.store.GetAccessToken(s.ctx)
	if !ok {
		return nil, apperrors.ErrNotLoggedIn
	}
	expiry = AccessTokenExpiry(access)
	if !c.needsRefresh(expiry) {
		return bearer(access, expiry), nil
	}

	refresh, ok := c.store.GetRefreshToken(s.ctx)
	if !ok {
		return nil, apperrors.ErrNoRefreshToken
	}
	role, ok := c.store.GetUserRole(s.ctx)
	if !ok {
		return nil, apperrors.ErrNotLoggedIn
	}

	tokens, err := c.RefreshTokens(s.ctx, role, refresh)
	if err != nil {
		return nil, errors.Wrap(err, "storeTokenSource.Token refresh")
	}
	if tokens.Refresh == "" {
		tokens.Refresh = refresh
	}
	c.store.SetTokens(s.ctx, tokens.Access, tokens.Refresh)
	log.Debug().Str("role", role.String()).Msg("Access token refreshed")

	expiry = AccessTokenExpiry(tokens.Access)
	if expiry.IsZero() {
		expiry = tokens.ExpiresAt(NowTimeFunc())
	}
	return bearer(tokens.Access, expiry), nil
}

func (c *Client) needsRefresh(expiry time.Time) bool {
	if expiry.IsZero() {
		return false
	}
	return !NowTimeFunc().Add(c.leeway).Before(expiry)
}

// AccessTokenExpiry reads the exp claim without verifying the signature. The
// portal cannot verify backend tokens, it only needs to know when to refresh.
// A token without a readable exp yields the zero time.
func AccessTokenExpiry(raw string) time.Time {
	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func bearer(access string, expiry time.Time) *oauth2.Token {
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer", Expiry: expiry}
}

var _ oauth2.TokenSource = (*storeTokenSource)(nil)
