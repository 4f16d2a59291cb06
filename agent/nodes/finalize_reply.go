package sessionnode

import (
	"fmt"

	statex "github.com/pattarav/supportline/agent/state"
)

const (
	GoodbyeMessage  = "Thank you for using our support system. Goodbye!"
	ContinueMessage = "How can I help you further?"
	FollowUpPrompt  = "Do you have any other questions? (yes/no)"
)

// EndTurn closes the session.
func EndTurn(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilSession
	}
	in.Reply = GoodbyeMessage
	in.NextPhase = statex.PhaseEnded
	return in, nil
}

// ContinueTurn re-prompts and hands the next turn back to the same specialist.
func ContinueTurn(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilSession
	}
	in.Reply = ContinueMessage
	in.NextPhase = statex.PhaseAwaitingSpecialist
	return in, nil
}

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, ErrNilSession
	}
	if in.Reply == "" {
		return GraphOutput{}, fmt.Errorf("turn %s produced an empty reply", in.Route)
	}
	return GraphOutput{
		Reply:       in.Reply,
		Speaker:     in.Speaker,
		NextPhase:   in.NextPhase,
		AskFollowUp: in.AskFollowUp,
		Ended:       in.NextPhase == statex.PhaseEnded,
	}, nil
}
