package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/JonMunkholm/storefront/internal/config"
	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
)

// session holds one browser's table state per list. mu serializes requests
// of the same session, since a table is single-owner.
type session struct {
	mu     sync.Mutex
	states map[string]datatable.State
}

// sessionStore keeps sessions in an expiring LRU keyed by the cookie id.
type sessionStore struct {
	mu     sync.Mutex
	cookie string
	ttl    time.Duration
	secure bool
	cache  *expirable.LRU[string, *session]
}

func newSessionStore(cfg config.SessionConfig) *sessionStore {
	return &sessionStore{
		cookie: cfg.CookieName,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
		cache:  expirable.NewLRU[string, *session](cfg.MaxSessions, nil, cfg.TTL),
	}
}

// get returns the request's session, starting a new one (and setting its
// cookie) when the cookie is missing, malformed or expired.
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if c, err := r.Cookie(st.cookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := st.cache.Get(c.Value); ok {
				st.cache.Add(c.Value, sess) // refresh expiry
				return sess
			}
		}
	}

	id := uuid.NewString()
	sess := &session{states: make(map[string]datatable.State)}
	st.cache.Add(id, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     st.cookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(st.ttl.Seconds()),
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len returns the number of live sessions.
func (st *sessionStore) Len() int {
	return st.cache.Len()
}

// withState runs fn against the session's last state of list and keeps the
// state it returns. Failed interactions leave the stored state unchanged.
func (s *Server) withState(w http.ResponseWriter, r *http.Request, list string, fn func(core.Request) (core.Result, error)) (core.Result, error) {
	sess := s.sessions.get(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	req := core.Request{List: list, Locale: localeOf(r.Context())}
	if st, ok := sess.states[list]; ok {
		req.State = &st
	}

	res, err := fn(req)
	if err != nil {
		return core.Result{}, err
	}
	sess.states[list] = res.State
	return res, nil
}

// peekState returns a copy of the session's state of list, or nil before
// the first interaction.
func (s *Server) peekState(w http.ResponseWriter, r *http.Request, list string) *datatable.State {
	sess := s.sessions.get(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if st, ok := sess.states[list]; ok {
		return &st
	}
	return nil
}
