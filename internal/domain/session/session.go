package session

import "sync"

// User is the authenticated user's profile as returned by the remote
// /users/me endpoint.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session holds the current authentication state. It is an explicit object
// passed to constructors rather than a process-wide global so tests can
// inject their own instance.
type Session struct {
	mu       sync.RWMutex
	token    string
	email    string
	username string
	userID   int
	loaded   bool
}

func New() *Session {
	return &Session{}
}

// Token implements the token provider consumed by the HTTP client.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Loaded reports whether session restore has been attempted, successfully
// or not.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) SetUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = u.ID
	s.username = u.Username
	s.email = u.Email
}

func (s *Session) MarkLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
}

// Clear wipes the credentials but keeps the loaded flag set: a cleared
// session is still a known state, not an unrestored one.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.email = ""
	s.username = ""
	s.userID = 0
	s.loaded = true
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
