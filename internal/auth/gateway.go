package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// Request is the transport-independent view of one inbound request, carrying
// everything the gateway needs to reach a decision.
type Request struct {
	Path          string
	Authorization string
	SessionID     string
	// Credentials submitted with the request (web login form). HasCredentials
	// distinguishes "no login attempt" from "login attempt with empty fields".
	Username       string
	Password       string
	HasCredentials bool
}

// DecisionKind tags the outcome of one gateway evaluation.
type DecisionKind int

const (
	// DecisionContinue lets the request proceed anonymously; the role gate
	// decides whether the operation tolerates an anonymous caller.
	DecisionContinue DecisionKind = iota
	// DecisionAllowed resolved an identity for the request.
	DecisionAllowed
	// DecisionUnauthorized rejects the request without invoking downstream
	// handlers.
	DecisionUnauthorized
	// DecisionRedirect sends a browser to the login page.
	DecisionRedirect
)

// Decision is the transient result of one gateway evaluation.
type Decision struct {
	Kind      DecisionKind
	Principal domain.Principal
	// RedirectTo is set for DecisionRedirect.
	RedirectTo string
	// SessionID is set when a web login just established a new session; the
	// transport layer turns it into a cookie.
	SessionID string
}

// Gateway is the per-request decision engine unifying the two trust models.
// It holds no mutable state of its own; sessions live in the externally owned
// store and the token key is fixed at startup.
type Gateway struct {
	classifier     *Classifier
	codec          *TokenCodec
	validator      *CredentialValidator
	sessions       SessionStore
	loginPath      string
	publicPrefixes []string
	logger         *zap.Logger
}

// GatewayConfig bundles gateway construction inputs.
type GatewayConfig struct {
	APIPrefix          string
	LoginPath          string
	PublicPathPrefixes []string
}

// NewGateway wires the decision engine.
func NewGateway(cfg GatewayConfig, codec *TokenCodec, validator *CredentialValidator, sessions SessionStore, logger *zap.Logger) *Gateway {
	return &Gateway{
		classifier:     NewClassifier(cfg.APIPrefix),
		codec:          codec,
		validator:      validator,
		sessions:       sessions,
		loginPath:      cfg.LoginPath,
		publicPrefixes: cfg.PublicPathPrefixes,
		logger:         logger,
	}
}

// Classifier exposes the request classifier for transport adapters.
func (g *Gateway) Classifier() *Classifier {
	return g.classifier
}

// LoginPath returns the configured login page path.
func (g *Gateway) LoginPath() string {
	return g.loginPath
}

// Authenticate evaluates one request. Every input, malformed ones included,
// terminates in one of the four decision variants; nothing escapes as an
// error.
func (g *Gateway) Authenticate(ctx context.Context, req Request) Decision {
	switch g.classifier.Classify(req.Path) {
	case KindAPI:
		return g.authenticateAPI(req)
	default:
		return g.authenticateWeb(ctx, req)
	}
}

// authenticateAPI runs the stateless bearer-token procedure. A missing or
// malformed Authorization header means "no token presented", deferring the
// allow/deny call to the role gate.
func (g *Gateway) authenticateAPI(req Request) Decision {
	token, ok := bearerToken(req.Authorization)
	if !ok {
		return Decision{Kind: DecisionContinue}
	}

	principal, err := g.codec.Verify(token)
	if err != nil {
		g.logger.Debug("bearer token rejected", zap.Error(err))
		return Decision{Kind: DecisionUnauthorized}
	}
	return Decision{Kind: DecisionAllowed, Principal: principal}
}

// authenticateWeb runs the stateful cookie/session procedure: an active login
// attempt wins over an existing session, an existing session wins over the
// public/protected path split, and protected paths redirect to login.
func (g *Gateway) authenticateWeb(ctx context.Context, req Request) Decision {
	if req.HasCredentials {
		principal, err := g.validator.Validate(ctx, req.Username, req.Password)
		if err != nil {
			return Decision{Kind: DecisionUnauthorized}
		}

		sessionID := uuid.NewString()
		if err := g.sessions.Put(ctx, sessionID, &domain.SessionRecord{Principal: principal}); err != nil {
			g.logger.Error("session create failed", zap.Error(err))
			return Decision{Kind: DecisionUnauthorized}
		}
		// Re-authentication replaces the previous session rather than
		// stacking a second record for the same browser.
		if req.SessionID != "" {
			_ = g.sessions.Delete(ctx, req.SessionID)
		}
		return Decision{Kind: DecisionAllowed, Principal: principal, SessionID: sessionID}
	}

	if req.SessionID != "" {
		record, err := g.sessions.Get(ctx, req.SessionID)
		if err != nil {
			g.logger.Warn("session lookup failed", zap.Error(err))
		} else if record != nil {
			return Decision{Kind: DecisionAllowed, Principal: record.Principal}
		}
	}

	if g.isPublicPath(req.Path) {
		return Decision{Kind: DecisionContinue}
	}
	return Decision{Kind: DecisionRedirect, RedirectTo: g.loginPath}
}

// isPublicPath applies the allow-list: only the login page and asset-like
// paths are public; every other rendered page, the bare root included, is
// protected.
func (g *Gateway) isPublicPath(path string) bool {
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Anything else counts as no token presented.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
