// Package auth identifies the browser behind a form session.
//
// Nobody signs in to fill the form; the only identity is the signed cookie
// that carries the form session id.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const formSessionKey = "form_session_id"

// SessionManager reads and writes the form session cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie store signed with sessionKey.
//
// A blank key is replaced by a random one, so cookies stop validating after
// a restart. Form sessions are held in memory and die with the process
// anyway, but production configs should still set a key.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("generate session key: no randomness available")
		}
		logger.Warn("session key is empty; using a random per-process key")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// FormSessionID returns the id stored in the cookie, or "" when the request
// has no valid cookie.
func (m *SessionManager) FormSessionID(r *http.Request) string {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A tampered or stale cookie is treated as absent.
		return ""
	}
	id, _ := sess.Values[formSessionKey].(string)
	return id
}

// SetFormSessionID stores id in the cookie.
func (m *SessionManager) SetFormSessionID(w http.ResponseWriter, r *http.Request, id string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[formSessionKey] = id
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// Clear expires the cookie.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, formSessionKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session cookie: %w", err)
	}
	return nil
}
