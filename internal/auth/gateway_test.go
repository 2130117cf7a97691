package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// fakeIdentityStore accepts a fixed set of credentials.
type fakeIdentityStore struct {
	accounts map[string]struct {
		password string
		roles    []string
	}
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{accounts: map[string]struct {
		password string
		roles    []string
	}{
		"admin": {password: "admin123", roles: []string{"ADMIN", "USER"}},
		"pepe":  {password: "pepe123", roles: []string{"USER"}},
	}}
}

func (s *fakeIdentityStore) Validate(_ context.Context, username, password string) (domain.Principal, error) {
	account, ok := s.accounts[username]
	if !ok || account.password != password {
		return domain.Principal{}, errors.New("no match")
	}
	return domain.Principal{Name: username, Roles: account.roles}, nil
}

func newTestGateway(t *testing.T) (*Gateway, *MemorySessionStore) {
	t.Helper()
	logger := zap.NewNop()
	sessions := NewMemorySessionStore()
	gateway := NewGateway(GatewayConfig{
		APIPrefix:          "/resources",
		LoginPath:          "/login",
		PublicPathPrefixes: []string{"/login", "/static", "/assets", "/favicon.ico", "/health", "/ws"},
	},
		NewTokenCodec(testSecret, 60),
		NewCredentialValidator(newFakeIdentityStore(), logger),
		sessions,
		logger,
	)
	return gateway, sessions
}

func TestGateway_APINoToken_Continues(t *testing.T) {
	gateway, _ := newTestGateway(t)

	decision := gateway.Authenticate(context.Background(), Request{Path: "/resources/projects"})
	assert.Equal(t, DecisionContinue, decision.Kind)
	assert.True(t, decision.Principal.Anonymous())
}

func TestGateway_APIValidToken_Allowed(t *testing.T) {
	gateway, _ := newTestGateway(t)

	token, _, err := gateway.codec.Issue("admin", []string{"ADMIN", "USER"})
	require.NoError(t, err)

	decision := gateway.Authenticate(context.Background(), Request{
		Path:          "/resources/projects",
		Authorization: "Bearer " + token,
	})
	assert.Equal(t, DecisionAllowed, decision.Kind)
	assert.Equal(t, "admin", decision.Principal.Name)
}

func TestGateway_APIBadToken_Unauthorized(t *testing.T) {
	gateway, _ := newTestGateway(t)

	for _, header := range []string{
		"Bearer not-a-token",
		"Bearer " + mustIssueForeignToken(t),
	} {
		decision := gateway.Authenticate(context.Background(), Request{
			Path:          "/resources/projects",
			Authorization: header,
		})
		assert.Equal(t, DecisionUnauthorized, decision.Kind, "header %q", header)
	}
}

// A malformed Authorization header means no token presented, not an error.
func TestGateway_APIMalformedHeader_Continues(t *testing.T) {
	gateway, _ := newTestGateway(t)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer   ", "token-without-scheme"} {
		decision := gateway.Authenticate(context.Background(), Request{
			Path:          "/resources/projects",
			Authorization: header,
		})
		assert.Equal(t, DecisionContinue, decision.Kind, "header %q", header)
	}
}

func TestGateway_WebLoginSuccess_CreatesSession(t *testing.T) {
	gateway, sessions := newTestGateway(t)

	decision := gateway.Authenticate(context.Background(), Request{
		Path:           "/login",
		Username:       "pepe",
		Password:       "pepe123",
		HasCredentials: true,
	})
	require.Equal(t, DecisionAllowed, decision.Kind)
	assert.Equal(t, "pepe", decision.Principal.Name)
	require.NotEmpty(t, decision.SessionID)

	record, err := sessions.Get(context.Background(), decision.SessionID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "pepe", record.Principal.Name)
}

func TestGateway_WebLoginFailure_NoSession(t *testing.T) {
	gateway, sessions := newTestGateway(t)

	decision := gateway.Authenticate(context.Background(), Request{
		Path:           "/login",
		Username:       "pepe",
		Password:       "wrong",
		HasCredentials: true,
	})
	assert.Equal(t, DecisionUnauthorized, decision.Kind)
	assert.Empty(t, decision.SessionID)
	assert.Empty(t, sessions.records)
}

func TestGateway_WebReLogin_ReplacesSession(t *testing.T) {
	gateway, sessions := newTestGateway(t)
	ctx := context.Background()

	first := gateway.Authenticate(ctx, Request{
		Path: "/login", Username: "pepe", Password: "pepe123", HasCredentials: true,
	})
	require.Equal(t, DecisionAllowed, first.Kind)

	second := gateway.Authenticate(ctx, Request{
		Path:      "/login",
		SessionID: first.SessionID,
		Username:  "admin", Password: "admin123", HasCredentials: true,
	})
	require.Equal(t, DecisionAllowed, second.Kind)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	old, err := sessions.Get(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Nil(t, old, "previous session must be replaced")

	current, err := sessions.Get(ctx, second.SessionID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "admin", current.Principal.Name)
}

func TestGateway_WebExistingSession_Allowed(t *testing.T) {
	gateway, sessions := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, sessions.Put(ctx, "sid-1", &domain.SessionRecord{
		Principal: domain.Principal{Name: "pepe", Roles: []string{"USER"}},
	}))

	decision := gateway.Authenticate(ctx, Request{Path: "/", SessionID: "sid-1"})
	assert.Equal(t, DecisionAllowed, decision.Kind)
	assert.Equal(t, "pepe", decision.Principal.Name)
}

func TestGateway_WebPublicPath_Continues(t *testing.T) {
	gateway, _ := newTestGateway(t)

	for _, path := range []string{"/login", "/static/app.css", "/assets/logo.png", "/favicon.ico", "/health/live"} {
		decision := gateway.Authenticate(context.Background(), Request{Path: path})
		assert.Equal(t, DecisionContinue, decision.Kind, "path %q", path)
	}
}

func TestGateway_WebProtectedPath_Redirects(t *testing.T) {
	gateway, _ := newTestGateway(t)

	for _, path := range []string{"/", "/projects.html", "/dashboard", "/admin/"} {
		decision := gateway.Authenticate(context.Background(), Request{Path: path})
		assert.Equal(t, DecisionRedirect, decision.Kind, "path %q", path)
		assert.Equal(t, "/login", decision.RedirectTo, "path %q", path)
	}
}

// An unknown session cookie behaves like no session at all.
func TestGateway_WebStaleSession_Redirects(t *testing.T) {
	gateway, _ := newTestGateway(t)

	decision := gateway.Authenticate(context.Background(), Request{Path: "/", SessionID: "expired"})
	assert.Equal(t, DecisionRedirect, decision.Kind)
}

func mustIssueForeignToken(t *testing.T) string {
	t.Helper()
	token, _, err := NewTokenCodec("some-other-key", 60).Issue("admin", []string{"ADMIN"})
	require.NoError(t, err)
	return token
}
