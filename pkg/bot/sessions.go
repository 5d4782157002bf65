package bot

import "sync"

// flowState tracks where a user is in a multi-step conversation.
type flowState int

const (
	stateNone flowState = iota
	stateDepositAmount
	stateWithdrawAmount
	stateBindWallet
	statePacketAmount
	statePacketCount
	statePacketMine
)

// session is one user's in-flight conversation. Packet creation carries
// the draft across steps.
type session struct {
	state        flowState
	packetAmount int64
	packetCount  int
}

// sessions is an in-memory per-user conversation store. One bot process
// serves all chats, so a mutex-guarded map is enough.
type sessions struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[int64]*session)}
}

// get returns the user's session, creating an idle one if missing.
func (s *sessions) get(tgID int64) session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[tgID]; ok {
		return *sess
	}
	return session{}
}

// set replaces the user's session.
func (s *sessions) set(tgID int64, sess session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[tgID] = &sess
}

// clear drops the user's session.
func (s *sessions) clear(tgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, tgID)
}
