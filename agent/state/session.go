package state

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of issue categories a session can be triaged into.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryGeneral   Category = "general"
	CategoryUnset     Category = ""
)

// ParseCategory maps free text onto a known category. It tolerates surrounding
// whitespace and mixed case but nothing else; unknown tokens report ok=false so
// the caller can fall back.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryBilling:
		return CategoryBilling, true
	case CategoryTechnical:
		return CategoryTechnical, true
	case CategoryGeneral:
		return CategoryGeneral, true
	default:
		return CategoryUnset, false
	}
}

// Phase is the controller's position in the turn state machine.
type Phase string

const (
	PhaseAwaitingTriage     Phase = "awaiting_triage"
	PhaseAwaitingSpecialist Phase = "awaiting_specialist"
	PhaseAwaitingContinue   Phase = "awaiting_continue"
	PhaseEnded              Phase = "ended"
)

// SessionState carries everything the router and handlers know about the user.
// It lives for the process lifetime and is never persisted.
type SessionState struct {
	SessionID string   `json:"session_id"`
	UserName  string   `json:"user_name"`
	Premium   bool     `json:"premium"`
	Category  Category `json:"category,omitempty"`

	// PreviousQueries holds only the queries recorded by triage; specialist
	// turns are not appended here.
	PreviousQueries []string `json:"previous_queries,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(userName string, premium bool, now time.Time) *SessionState {
	name := strings.TrimSpace(userName)
	if name == "" {
		name = "Guest"
	}
	return &SessionState{
		SessionID: uuid.NewString(),
		UserName:  name,
		Premium:   premium,
		Category:  CategoryUnset,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// RecordTriage appends the query and pins the resolved category. This is the
// only mutation the triage router performs on the session.
func (s *SessionState) RecordTriage(query string, category Category, now time.Time) {
	if s == nil {
		return
	}
	s.PreviousQueries = append(s.PreviousQueries, query)
	s.Category = category
	s.Touch(now)
}

// QueryCount reports how many queries triage has recorded.
func (s *SessionState) QueryCount() int {
	if s == nil {
		return 0
	}
	return len(s.PreviousQueries)
}

// Snapshot is the immutable per-turn view gating predicates evaluate against.
// Taking it at the start of a turn keeps action availability decoupled from any
// later mutation of the session.
type Snapshot struct {
	UserName string
	Premium  bool
	Category Category
}

func (s *SessionState) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{
		UserName: s.UserName,
		Premium:  s.Premium,
		Category: s.Category,
	}
}
