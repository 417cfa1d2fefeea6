// Package viewer builds the per-request ViewerContext from the platform
// session cookie. The portal does not own authentication: the platform's
// auth service writes the session (user id + access token) on a shared
// domain, and the portal only reads it. All visibility logic receives the
// ViewerContext as an explicit value; nothing reads session state ad hoc.
package viewer

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pkslestari/portal/internal/domain/models"
	"go.uber.org/zap"
)

// Session value keys. These match what the platform's auth service writes.
const (
	userIDKey      = "user_id"
	accessTokenKey = "access_token"
)

// CompletionResolver resolves whether a logged-in viewer has completed at
// least one assessment. Implementations must fail closed: return false on
// any error or ambiguity.
type CompletionResolver interface {
	HasCompletedAssessment(ctx context.Context, userID, token string) bool
}

// completionTTL bounds how long a resolved completion flag is reused
// before the upstream is asked again. A freshly completed assessment
// becomes visible on the next expiry.
const completionTTL = 5 * time.Minute

type completionEntry struct {
	completed bool
	expires   time.Time
}

// SessionManager reads the platform session cookie and constructs the
// ViewerContext for each request.
type SessionManager struct {
	store    *sessions.CookieStore
	logger   *zap.Logger
	name     string
	resolver CompletionResolver

	mu         sync.Mutex
	completion map[string]completionEntry
}

// ConfigError is returned when session configuration is invalid.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewSessionManager creates a SessionManager.
//
// sessionKey must be the same signing key the platform's auth service uses
// (≥32 random chars in production); name and domain likewise must match the
// cookie the platform writes.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &ConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	isWeak := len(sessionKey) < 32 || isDefaultKey(sessionKey)
	if secure {
		if isWeak {
			return nil, &ConfigError{
				Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
			}
		}
	} else if isWeak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)),
			zap.Bool("is_default", isDefaultKey(sessionKey)))
	}

	if name == "" {
		name = "lestari-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("viewer session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:      store,
		logger:     logger,
		name:       name,
		completion: make(map[string]completionEntry),
	}, nil
}

// SetCompletionResolver sets the resolver used to populate
// HasCompletedAssessment for logged-in viewers. Without a resolver the
// flag stays false, which is the fail-closed default.
func (sm *SessionManager) SetCompletionResolver(r CompletionResolver) {
	sm.resolver = r
}

type ctxKey string

const viewerKey ctxKey = "viewer"

// Current returns the viewer context for the request. Requests that did
// not pass through LoadViewer get the anonymous context.
func Current(r *http.Request) models.ViewerContext {
	if vc, ok := r.Context().Value(viewerKey).(models.ViewerContext); ok {
		return vc
	}
	return models.Anonymous()
}

// LoadViewer is middleware that constructs the ViewerContext once per
// request and stores it in context. A viewer counts as logged in only when
// both a user id and an access token are present in the session; the
// completion flag is resolved through the configured resolver, defaulting
// to false when the lookup cannot be performed.
func (sm *SessionManager) LoadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logSessionError(r, err)
		}

		vc := models.Anonymous()
		if sess != nil {
			userID := getString(sess, userIDKey)
			token := getString(sess, accessTokenKey)
			if userID != "" && token != "" {
				vc = models.ViewerContext{
					UserID:      userID,
					AccessToken: token,
					IsLoggedIn:  true,
				}
				vc.HasCompletedAssessment = sm.resolveCompletion(r.Context(), userID, token)
			}
		}

		next.ServeHTTP(w, withViewer(r, vc))
	})
}

// resolveCompletion answers HasCompletedAssessment for a logged-in viewer,
// consulting the upstream at most once per user per completionTTL so static
// asset and probe requests do not fan out into resolver calls.
func (sm *SessionManager) resolveCompletion(ctx context.Context, userID, token string) bool {
	if sm.resolver == nil {
		return false
	}

	now := time.Now()
	sm.mu.Lock()
	if e, ok := sm.completion[userID]; ok && now.Before(e.expires) {
		sm.mu.Unlock()
		return e.completed
	}
	sm.mu.Unlock()

	completed := sm.resolver.HasCompletedAssessment(ctx, userID, token)

	sm.mu.Lock()
	sm.completion[userID] = completionEntry{completed: completed, expires: now.Add(completionTTL)}
	sm.mu.Unlock()
	return completed
}

// Establish writes a viewer session. The production cookie is written by
// the platform's auth service; this exists for local development and tests.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, userID, token string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}
	sess.Values[userIDKey] = userID
	sess.Values[accessTokenKey] = token
	return sess.Save(r, w)
}

// WithTestViewer injects a ViewerContext into the request context for
// testing handlers without running the middleware.
func WithTestViewer(r *http.Request, vc models.ViewerContext) *http.Request {
	return withViewer(r, vc)
}

func withViewer(r *http.Request, vc models.ViewerContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), viewerKey, vc))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

// logSessionError classifies a session/cookie error so expired cookies do
// not page anyone while tampering still gets noticed.
func (sm *SessionManager) logSessionError(r *http.Request, err error) {
	errStr := strings.ToLower(err.Error())

	if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
		switch {
		case strings.Contains(errStr, "expired timestamp"):
			sm.logger.Debug("session expired, treating viewer as anonymous",
				zap.String("path", r.URL.Path))
		case strings.Contains(errStr, "mac") || strings.Contains(errStr, "hash"):
			sm.logger.Warn("session MAC validation failed (possible tampering)",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()))
		default:
			sm.logger.Info("session decode failed, treating viewer as anonymous",
				zap.String("path", r.URL.Path))
		}
		return
	}

	sm.logger.Warn("session error, treating viewer as anonymous",
		zap.Error(err),
		zap.String("path", r.URL.Path))
}

// isDefaultKey checks if the session key appears to be a default/placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	patterns := []string{
		"dev-only",
		"change-me",
		"placeholder",
		"default",
		"example",
		"insecure",
		"test-key",
		"secret123",
		"password",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
