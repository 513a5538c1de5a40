// Package session carries one-shot flash messages across requests in a
// signed cookie.
//
// Handlers queue messages with Flash or FlashError and pages read them with
// Consume. Whatever is still pending when the response header is written
// is stored in the cookie, so a message queued before a redirect is shown
// by the next page. Consumed messages clear the cookie.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the flash cookie. Middleware that must not replay
// per-user state, such as the page cache, checks for it.
const CookieName = "fyyur_flash"

const contextKey = "session.flash"

// Categories used by the templates to style messages.
const (
	CategoryMessage = "message"
	CategoryError   = "error"
)

// Message is one flashed message.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"m"`
}

// Store signs and verifies flash cookies with a shared secret.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewStore returns a Store signing with secret. Cookies expire after ttl;
// a non-positive ttl means five minutes.
func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure}
}

type state struct {
	pending   []Message
	hadCookie bool
}

// Middleware loads the incoming flash cookie into the request context and
// arranges for pending messages to be written back before the response
// header goes out. A tampered or expired cookie is ignored and cleared.
func (s *Store) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := &state{}
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				st.hadCookie = true
				if msgs, err := parseMessages(s.secret, ck.Value); err == nil {
					st.pending = msgs
				}
			}
			c.Set(contextKey, st)
			c.Response().Before(func() { s.persist(c, st) })
			return next(c)
		}
	}
}

func (s *Store) persist(c echo.Context, st *state) {
	ck := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	switch {
	case len(st.pending) > 0:
		token, err := signMessages(s.secret, st.pending, s.ttl)
		if err != nil {
			return
		}
		ck.Value = token
		ck.MaxAge = int(s.ttl / time.Second)
	case st.hadCookie:
		ck.MaxAge = -1
	default:
		return
	}
	c.SetCookie(ck)
}

func current(c echo.Context) *state {
	if st, ok := c.Get(contextKey).(*state); ok {
		return st
	}
	st := &state{}
	c.Set(contextKey, st)
	return st
}

// Flash queues an informational message.
func Flash(c echo.Context, text string) {
	add(c, CategoryMessage, text)
}

// FlashError queues an error message.
func FlashError(c echo.Context, text string) {
	add(c, CategoryError, text)
}

func add(c echo.Context, category, text string) {
	st := current(c)
	st.pending = append(st.pending, Message{Category: category, Text: text})
}

// Consume returns every pending message, oldest first, and clears them.
func Consume(c echo.Context) []Message {
	st := current(c)
	msgs := st.pending
	st.pending = nil
	return msgs
}

// HasCookie reports whether the request carries a flash cookie.
func HasCookie(r *http.Request) bool {
	ck, err := r.Cookie(CookieName)
	return err == nil && ck.Value != ""
}
