package session

// State is the lifecycle phase of a request session.
type State string

const (
	// StateUninitialized means no restoration has been attempted yet.
	StateUninitialized State = "uninitialized"

	// StateRestoring means the caller's credentials are being inspected.
	StateRestoring State = "restoring"

	// StateAuthenticated means a verified identity is attached.
	StateAuthenticated State = "authenticated"

	// StateAnonymous means restoration finished with no verified identity.
	StateAnonymous State = "anonymous"
)

// Session holds the caller identity for a single request. It starts
// uninitialized, moves to restoring while credentials are checked, and lands
// on authenticated or anonymous.
type Session struct {
	state  State
	userID uint
}

func New() *Session {
	return &Session{state: StateUninitialized}
}

// Begin marks the session as restoring. It is a no-op once restoration has
// already finished.
func (s *Session) Begin() {
	if s.state == StateUninitialized {
		s.state = StateRestoring
	}
}

// Login completes restoration with a verified identity.
func (s *Session) Login(userID uint) {
	s.userID = userID
	s.state = StateAuthenticated
}

// Clear drops any identity, on logout or when restoration finds nothing.
func (s *Session) Clear() {
	s.userID = 0
	s.state = StateAnonymous
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Authenticated reports whether a verified identity is attached.
func (s *Session) Authenticated() bool { return s.state == StateAuthenticated }

// UserID returns the attached identity, if any.
func (s *Session) UserID() (uint, bool) {
	if s.state != StateAuthenticated {
		return 0, false
	}
	return s.userID, true
}
