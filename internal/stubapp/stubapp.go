// Package stubapp serves a small stand-in for the Quorum meetings product:
// the same URL scheme, login flows (password and federated SSO), meetings,
// notifications and profile pages the harness drives in production. The
// markup deliberately reproduces the quirks the harness has to survive:
// asynchronously rendered lists, occluding overlays, and session tokens in
// query parameters.
package stubapp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/quorum-e2e/internal/idp"
	"github.com/quorumhq/quorum-e2e/internal/obs"
)

var log = obs.Pkg("stubapp")

// SessionCookieName is the stub's session cookie.
const SessionCookieName = "qsession"

// Meeting is one scheduled meeting.
type Meeting struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Notification is one inbox entry. Kind is "mention", "invite" or "system".
type Notification struct {
	Kind string
	Text string
}

type account struct {
	email       string
	password    string // empty for SSO-provisioned accounts
	displayName string
	timezone    string
}

type session struct {
	id        string
	email     string
	createdAt time.Time
}

// Server is the stub application.
type Server struct {
	baseURL     string
	tokenSecret []byte
	ssoClient   *idp.Client

	mu            sync.Mutex
	accounts      map[string]*account // keyed by email
	sessions      map[string]*session // keyed by session id
	meetings      []*Meeting
	notifications []Notification
	ssoStates     map[string]bool
	// listDelay is how long /api/meetings stalls, simulating the real
	// product's slow dashboard hydration.
	listDelay time.Duration
}

// NewServer creates a stub with an empty account set. ssoClient may be nil;
// the SSO entry point then responds 503 like a misconfigured tenant.
func NewServer(ssoClient *idp.Client) *Server {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(fmt.Sprintf("generate token secret: %v", err))
	}
	return &Server{
		tokenSecret: secret,
		ssoClient:   ssoClient,
		accounts:    make(map[string]*account),
		sessions:    make(map[string]*session),
		ssoStates:   make(map[string]bool),
		listDelay:   600 * time.Millisecond,
	}
}

// SetBaseURL records the externally visible URL. Post-login redirects are
// absolute against it, like the product's canonical-host redirects.
func (s *Server) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

// SetSSOClient wires the relying-party client. The callback URL embeds the
// server's own address, so the client usually exists only after the listener
// is up; this lets callers close the loop.
func (s *Server) SetSSOClient(c *idp.Client) {
	s.ssoClient = c
}

// SetListDelay overrides the meeting-list hydration delay.
func (s *Server) SetListDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listDelay = d
}

// RegisterUser provisions a password account.
func (s *Server) RegisterUser(email, password, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{
		email:       email,
		password:    password,
		displayName: displayName,
		timezone:    "UTC",
	}
}

// SeedMeeting adds a meeting to the dashboard list and returns its ID.
func (s *Server) SeedMeeting(title, duration string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &Meeting{ID: uuid.NewString(), Title: title, Duration: duration}
	s.meetings = append(s.meetings, m)
	return m.ID
}

// SeedNotification adds an inbox entry.
func (s *Server) SeedNotification(kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{Kind: kind, Text: text})
}

// ClearNotifications empties the inbox, exercising the harness's
// feature-not-present branches.
func (s *Server) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// RegisterRoutes wires all stub endpoints onto mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /onboarding/Login", s.handleLoginPage)
	mux.HandleFunc("POST /onboarding/Login", s.handleLoginSubmit)
	mux.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	mux.HandleFunc("GET /logout", s.handleLogout)

	mux.HandleFunc("GET /home", s.requireSession(s.handleHome))
	mux.HandleFunc("GET /api/meetings", s.requireSession(s.handleMeetingsAPI))
	mux.HandleFunc("GET /meetings/new", s.requireSession(s.handleNewMeetingPage))
	mux.HandleFunc("POST /meetings/new", s.requireSession(s.handleNewMeetingSubmit))
	mux.HandleFunc("GET /meetings/{id}", s.requireSession(s.handleMeeting))
	mux.HandleFunc("GET /notifications", s.requireSession(s.handleNotifications))
	mux.HandleFunc("GET /profile", s.requireSession(s.handleProfile))
	mux.HandleFunc("POST /profile", s.requireSession(s.handleProfileSubmit))
}

func (s *Server) createSession(email string) *session {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("generate session id: %v", err))
	}
	sess := &session{
		id:        hex.EncodeToString(buf),
		email:     email,
		createdAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *Server) sessionFromRequest(r *http.Request) *session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[cookie.Value]
}

func setSessionCookie(w http.ResponseWriter, sess *session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireSession accepts either the session cookie or a valid st query
// token (the product hands session tokens around in URLs; the stub keeps
// that behavior so the harness deals with it).
func (s *Server) requireSession(next func(http.ResponseWriter, *http.Request, *session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := s.sessionFromRequest(r); sess != nil {
			next(w, r, sess)
			return
		}
		if st := r.URL.Query().Get("st"); st != "" {
			if sid, err := s.verifySessionToken(st); err == nil {
				s.mu.Lock()
				sess := s.sessions[sid]
				s.mu.Unlock()
				if sess != nil {
					setSessionCookie(w, sess)
					next(w, r, sess)
					return
				}
			} else {
				log.Warn("rejected session token", "error", err)
			}
		}
		http.Redirect(w, r, "/onboarding/Login", http.StatusFound)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.sessionFromRequest(r) != nil {
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/onboarding/Login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/onboarding/Login", http.StatusFound)
}
