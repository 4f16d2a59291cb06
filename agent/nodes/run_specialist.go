package sessionnode

import (
	"context"

	contractx "github.com/pattarav/supportline/agent/contract"
	statex "github.com/pattarav/supportline/agent/state"
)

// RunSpecialist forwards the query to the handler bound at handoff. The binding
// never changes for the rest of the session, whatever the follow-up is about.
func RunSpecialist(ctx context.Context, in *GraphState, registry contractx.Registry) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNilSession
	}
	if in.Session.Category == statex.CategoryUnset {
		return nil, ErrNotTriaged
	}

	handler := registry.Handler(in.Session.Category)

	in.Reply = handler.Handle(ctx, in.Text, in.Snapshot)
	in.Speaker = speakerFor(in.Session.Category)
	in.NextPhase = statex.PhaseAwaitingContinue
	in.AskFollowUp = true
	return in, nil
}

func speakerFor(c statex.Category) string {
	switch c {
	case statex.CategoryBilling:
		return "Billing Agent"
	case statex.CategoryTechnical:
		return "Technical Agent"
	default:
		return "General Agent"
	}
}
