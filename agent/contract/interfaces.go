package contract

import (
	"context"

	statex "github.com/pattarav/supportline/agent/state"
)

// Classifier is the external language-model capability. Both routing and action
// selection go through this single operation so tests can substitute scripted
// outputs.
type Classifier interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Triage buckets a query into a category, records it on the session, and
// returns the handoff result. It never fails: classifier errors fall closed to
// the general category.
type Triage interface {
	Route(ctx context.Context, query string, st *statex.SessionState) RouteResult
}

// Handler answers a specialist-stage query. It never returns an error: a
// classifier failure is folded into the user-visible apology string.
type Handler interface {
	Handle(ctx context.Context, query string, snap statex.Snapshot) string
}

// Registry exposes the triage router and the fixed category-to-handler binding.
type Registry interface {
	Triage() Triage
	Handler(c statex.Category) Handler
}
