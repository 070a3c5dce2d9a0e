package stubapp

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type loginData struct {
	Title  string
	Authed bool
	Error  string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", loginData{Title: "Sign in"})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	s.mu.Lock()
	acct := s.accounts[email]
	s.mu.Unlock()

	if acct == nil || acct.password == "" ||
		subtle.ConstantTimeCompare([]byte(acct.password), []byte(password)) != 1 {
		log.Warn("login rejected", "email", email)
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, "login", loginData{Title: "Sign in", Error: "Invalid email or password"})
		return
	}

	sess := s.createSession(email)
	setSessionCookie(w, sess)
	s.redirectHome(w, r, sess)
}

// redirectHome sends the browser to the dashboard with the st token in the
// URL, matching the product's post-login redirect shape. The product always
// redirects to an absolute URL on its canonical host, so the base URL is
// prefixed when known.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, sess *session) {
	dest := "/home"
	if token, err := s.signSessionToken(sess); err != nil {
		log.Error("sign session token", "error", err)
	} else {
		dest += "?st=" + token
	}
	if s.baseURL != "" {
		dest = s.baseURL + dest
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if s.ssoClient == nil {
		http.Error(w, "SSO is not configured for this workspace", http.StatusServiceUnavailable)
		return
	}
	state := uuid.NewString()
	s.mu.Lock()
	s.ssoStates[state] = true
	s.mu.Unlock()
	http.Redirect(w, r, s.ssoClient.AuthURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if s.ssoClient == nil {
		http.Error(w, "SSO is not configured for this workspace", http.StatusServiceUnavailable)
		return
	}
	state := r.URL.Query().Get("state")
	s.mu.Lock()
	known := s.ssoStates[state]
	delete(s.ssoStates, state)
	s.mu.Unlock()
	if !known {
		http.Error(w, "unknown or replayed state", http.StatusBadRequest)
		return
	}

	claims, err := s.ssoClient.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Warn("sso exchange failed", "error", err)
		http.Error(w, "code exchange failed", http.StatusBadGateway)
		return
	}

	// Provision on first SSO login.
	s.mu.Lock()
	if s.accounts[claims.Email] == nil {
		name := claims.Name
		if name == "" {
			name = claims.Email
		}
		s.accounts[claims.Email] = &account{
			email:       claims.Email,
			displayName: name,
			timezone:    "UTC",
		}
	}
	s.mu.Unlock()

	sess := s.createSession(claims.Email)
	setSessionCookie(w, sess)
	s.redirectHome(w, r, sess)
}

type homeData struct {
	Title       string
	Authed      bool
	DisplayName string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, sess *session) {
	s.mu.Lock()
	name := sess.email
	if acct := s.accounts[sess.email]; acct != nil && acct.displayName != "" {
		name = acct.displayName
	}
	s.mu.Unlock()
	s.render(w, "home", homeData{Title: "Home", Authed: true, DisplayName: name})
}

func (s *Server) handleMeetingsAPI(w http.ResponseWriter, r *http.Request, _ *session) {
	s.mu.Lock()
	delay := s.listDelay
	meetings := make([]*Meeting, len(s.meetings))
	copy(meetings, s.meetings)
	s.mu.Unlock()

	// The real dashboard hydrates slowly; the stall is what the harness's
	// wait-and-retry machinery exists for.
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if meetings == nil {
		meetings = []*Meeting{}
	}
	if err := json.NewEncoder(w).Encode(meetings); err != nil {
		log.Error("encode meeting list", "error", err)
	}
}

type pageData struct {
	Title  string
	Authed bool
}

func (s *Server) handleNewMeetingPage(w http.ResponseWriter, r *http.Request, _ *session) {
	s.render(w, "new-meeting", pageData{Title: "New meeting", Authed: true})
}

func (s *Server) handleNewMeetingSubmit(w http.ResponseWriter, r *http.Request, _ *session) {
	title := r.FormValue("title")
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	duration := r.FormValue("duration")
	if duration == "" {
		duration = "30 minutes"
	}
	id := s.SeedMeeting(title, duration)
	log.Info("meeting created", "meeting_id", id, "title", title)
	http.Redirect(w, r, "/meetings/"+id, http.StatusFound)
}

type meetingData struct {
	Title   string
	Authed  bool
	Meeting *Meeting
}

func (s *Server) handleMeeting(w http.ResponseWriter, r *http.Request, _ *session) {
	id := r.PathValue("id")
	s.mu.Lock()
	var found *Meeting
	for _, m := range s.meetings {
		if m.ID == id {
			found = m
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "meeting", meetingData{Title: found.Title, Authed: true, Meeting: found})
}

type notificationsData struct {
	Title         string
	Authed        bool
	Notifications []Notification
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request, _ *session) {
	s.mu.Lock()
	items := make([]Notification, len(s.notifications))
	copy(items, s.notifications)
	s.mu.Unlock()
	s.render(w, "notifications", notificationsData{
		Title:         "Notifications",
		Authed:        true,
		Notifications: items,
	})
}

type profileData struct {
	Title       string
	Authed      bool
	Saved       bool
	DisplayName string
	Timezone    string
	Timezones   []string
}

var timezones = []string{"UTC", "America/New_York", "Europe/Berlin", "Asia/Tokyo"}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, sess *session) {
	s.mu.Lock()
	acct := s.accounts[sess.email]
	if acct == nil {
		acct = &account{email: sess.email, timezone: "UTC"}
		s.accounts[sess.email] = acct
	}
	data := profileData{
		Title:       "Profile",
		Authed:      true,
		Saved:       r.URL.Query().Get("saved") == "1",
		DisplayName: acct.displayName,
		Timezone:    acct.timezone,
		Timezones:   timezones,
	}
	s.mu.Unlock()
	s.render(w, "profile", data)
}

func (s *Server) handleProfileSubmit(w http.ResponseWriter, r *http.Request, sess *session) {
	name := r.FormValue("display_name")
	tz := r.FormValue("timezone")
	if tz != "" && !validTimezone(tz) {
		http.Error(w, fmt.Sprintf("unknown timezone %q", tz), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	acct := s.accounts[sess.email]
	if acct == nil {
		acct = &account{email: sess.email}
		s.accounts[sess.email] = acct
	}
	if name != "" {
		acct.displayName = name
	}
	if tz != "" {
		acct.timezone = tz
	}
	s.mu.Unlock()

	http.Redirect(w, r, "/profile?saved=1", http.StatusFound)
}

func validTimezone(tz string) bool {
	for _, known := range timezones {
		if known == tz {
			return true
		}
	}
	return false
}
