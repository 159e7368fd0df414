package server

import (
	"sync"

	"github.com/google/uuid"
)

// User is one registered identity. Y1 and Y2 are the public key material
// bound to the user's secret; R1 and R2 hold the commitment randomness of
// the currently pending handshake and are nil outside one. A re-registration
// overwrites the whole record.
type User[E any] struct {
	Username string
	Y1       E
	Y2       E
	R1       *E
	R2       *E
}

// AuthChallenge is one outstanding challenge, issued by the challenge step
// and consumed exactly once by verification. Username is a back-reference,
// not ownership.
type AuthChallenge[S any] struct {
	ID       string
	Username string
	C        S
}

// UserStore is the storage surface of the orchestrator: plain CRUD on user
// records plus issuance and consumption of one-time challenges. It enforces
// no cross-entity invariants of its own. Implementations must be safe for
// concurrent use.
type UserStore[E, S any] interface {
	// Create upserts the record under its username.
	Create(u *User[E])
	Read(username string) (*User[E], bool)
	// Update replaces the record under username; it reports false and
	// changes nothing when no such record exists.
	Update(username string, u *User[E]) bool
	Delete(username string) (*User[E], bool)

	// CreateAuthChallenge stores c under a freshly generated unique id,
	// associated with username, and returns the id.
	CreateAuthChallenge(username string, c S) string
	GetAuthChallenge(id string) (*AuthChallenge[S], bool)
	DeleteAuthChallenge(id string)
}

// InMemoryUserStore keeps users and challenges in two maps guarded by one
// mutex. State does not survive a process restart; abandoned challenges
// remain until consumed.
type InMemoryUserStore[E, S any] struct {
	mu         sync.Mutex
	users      map[string]*User[E]
	challenges map[string]*AuthChallenge[S]
}

var _ UserStore[int, int] = (*InMemoryUserStore[int, int])(nil)

func NewInMemoryUserStore[E, S any]() *InMemoryUserStore[E, S] {
	return &InMemoryUserStore[E, S]{
		users:      map[string]*User[E]{},
		challenges: map[string]*AuthChallenge[S]{},
	}
}

func (s *InMemoryUserStore[E, S]) Create(u *User[E]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
}

func (s *InMemoryUserStore[E, S]) Read(username string) (*User[E], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	return u, ok
}

func (s *InMemoryUserStore[E, S]) Update(username string, u *User[E]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return false
	}
	s.users[username] = u
	return true
}

func (s *InMemoryUserStore[E, S]) Delete(username string) (*User[E], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	delete(s.users, username)
	return u, ok
}

func (s *InMemoryUserStore[E, S]) CreateAuthChallenge(username string, c S) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.challenges[id] = &AuthChallenge[S]{ID: id, Username: username, C: c}
	return id
}

func (s *InMemoryUserStore[E, S]) GetAuthChallenge(id string) (*AuthChallenge[S], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[id]
	return ch, ok
}

func (s *InMemoryUserStore[E, S]) DeleteAuthChallenge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, id)
}
