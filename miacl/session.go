package miacl

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
)

// RegistrationSession identifies one user/N-signer registration round for
// correlating log lines and error reports across the parties involved; the
// protocol's correctness does not depend on it. Register mints one per call
// and folds its ID into every error it returns.
type RegistrationSession struct {
	ID uuid.UUID
}

// NewRegistrationSession mints a fresh session identifier.
func NewRegistrationSession() *RegistrationSession {
	return &RegistrationSession{ID: uuid.New()}
}

// SignSession identifies one four-round signing run and tracks, via a
// bitset keyed by signer index, which signers have answered the round
// currently in flight. Sign mints one per call and passes it to
// forEachSigner, which marks a signer responded as its round-function
// returns and reports Pending() signer indices in the round's error if the
// round does not complete cleanly, so a caller can tell which signer(s)
// stalled or failed without scanning a slice of interface values.
type SignSession struct {
	ID uuid.UUID
	N  int

	mu        sync.Mutex
	responded *bitset.BitSet
}

// NewSignSession allocates a session for a run with n signers.
func NewSignSession(n int) *SignSession {
	return &SignSession{ID: uuid.New(), N: n, responded: bitset.New(uint(n))}
}

// MarkResponded records that signer i has answered the current round.
// forEachSigner calls this from every signer's own goroutine, so the bitset
// write is guarded rather than left to race across signer indices that
// share an underlying word.
func (s *SignSession) MarkResponded(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responded.Set(uint(i))
}

// AllResponded reports whether every signer has answered the current round.
func (s *SignSession) AllResponded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responded.Count() == uint(s.N)
}

// Pending returns the signer indices that have not yet answered the
// current round, in ascending order.
func (s *SignSession) Pending() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]int, 0, s.N)
	for i := 0; i < s.N; i++ {
		if !s.responded.Test(uint(i)) {
			pending = append(pending, i)
		}
	}
	return pending
}

// ResetRound clears the responded bitset ahead of the next round.
func (s *SignSession) ResetRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responded.ClearAll()
}
