package sessionnode

import (
	"context"

	contractx "github.com/pattarav/supportline/agent/contract"
	statex "github.com/pattarav/supportline/agent/state"
)

const triageSpeaker = "Triage Agent"

// TriageTurn runs the one-time classification and handoff. The router records
// the query and category on the session as a side effect.
func TriageTurn(ctx context.Context, in *GraphState, triage contractx.Triage) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNilSession
	}

	res := triage.Route(ctx, in.Text, in.Session)

	in.Reply = res.Message
	in.Speaker = triageSpeaker
	in.NextPhase = statex.PhaseAwaitingSpecialist
	return in, nil
}
