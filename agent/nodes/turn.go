package sessionnode

import (
	"errors"
	"strings"

	statex "github.com/pattarav/supportline/agent/state"
)

var (
	ErrInvalidText = errors.New("turn text is empty")
	ErrNilSession  = errors.New("session state is nil")
	ErrNotTriaged  = errors.New("session has no category yet")
)

// Route names for the turn branch. Each maps to a graph node.
const (
	RouteEnd        = "end_turn"
	RouteTriage     = "triage_turn"
	RouteSpecialist = "specialist_turn"
	RouteContinue   = "continue_turn"
)

type GraphInput struct {
	Phase   statex.Phase
	Text    string
	Session *statex.SessionState
}

type GraphOutput struct {
	Reply     string
	Speaker   string
	NextPhase statex.Phase
	// AskFollowUp tells the controller to print the continue question after
	// the reply.
	AskFollowUp bool
	Ended       bool
}

type GraphState struct {
	Phase   statex.Phase
	Text    string
	Session *statex.SessionState

	// Snapshot is taken once at turn start; gating predicates see this view
	// even if the session mutates later in the turn.
	Snapshot statex.Snapshot

	Route string

	Reply       string
	Speaker     string
	NextPhase   statex.Phase
	AskFollowUp bool
}

// ValidateTurn normalizes the input and decides which branch handles it.
func ValidateTurn(in GraphInput) (*GraphState, error) {
	if in.Session == nil {
		return nil, ErrNilSession
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidText
	}

	return &GraphState{
		Phase:    in.Phase,
		Text:     text,
		Session:  in.Session,
		Snapshot: in.Session.Snapshot(),
		Route:    decideRoute(in.Phase, text),
	}, nil
}

// decideRoute applies the machine's transitions: quit words end the session
// from the triage and continue phases only; specialist-phase text always goes
// to the bound handler.
func decideRoute(phase statex.Phase, text string) string {
	lowered := strings.ToLower(text)

	switch phase {
	case statex.PhaseAwaitingTriage:
		switch lowered {
		case "quit", "exit", "bye":
			return RouteEnd
		}
		return RouteTriage
	case statex.PhaseAwaitingSpecialist:
		return RouteSpecialist
	case statex.PhaseAwaitingContinue:
		switch lowered {
		case "no", "n", "quit", "exit":
			return RouteEnd
		}
		return RouteContinue
	default:
		return RouteEnd
	}
}
