package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/pattarav/supportline/agent/contract"
	promptx "github.com/pattarav/supportline/agent/prompt"
	statex "github.com/pattarav/supportline/agent/state"
)

// Router buckets the first query of a session into a category and hands off.
// It is the only component with an error-recovery policy: any classifier
// failure or unrecognized answer falls closed to the general category, never to
// the user.
type Router struct {
	classifier contractx.Classifier
	template   string
	now        func() time.Time
}

func NewRouter(classifier contractx.Classifier, template string) (*Router, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("%w: triage template", contractx.ErrPromptMissing)
	}
	return &Router{
		classifier: classifier,
		template:   template,
		now:        time.Now,
	}, nil
}

// WithClock overrides the clock, for tests.
func (r *Router) WithClock(now func() time.Time) *Router {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *Router) Route(ctx context.Context, query string, st *statex.SessionState) contractx.RouteResult {
	category := r.classify(ctx, query)

	st.RecordTriage(query, category, r.now())

	return contractx.RouteResult{
		Category: category,
		Message: fmt.Sprintf(
			"Your query has been categorized as: %s. Transferring you to the %s specialist.",
			category, category,
		),
	}
}

func (r *Router) classify(ctx context.Context, query string) statex.Category {
	prompt := promptx.Render(r.template, map[string]string{
		"query": query,
	})

	raw, err := r.classifier.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("triage classification failed, falling back to general")
		return statex.CategoryGeneral
	}

	category, ok := normalize(raw)
	if !ok {
		log.Warn().Str("reply", strings.TrimSpace(raw)).Msg("unrecognized triage reply, falling back to general")
		return statex.CategoryGeneral
	}
	return category
}

// normalize extracts a category token from the model reply. Models asked for a
// single token still occasionally wrap it ("Category: billing"), so the first
// line is also scanned word by word before giving up.
func normalize(raw string) (statex.Category, bool) {
	if c, ok := statex.ParseCategory(raw); ok {
		return c, true
	}

	line := raw
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	for _, word := range strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ':' || r == ',' || r == '.' || r == '"'
	}) {
		if c, ok := statex.ParseCategory(word); ok {
			return c, true
		}
	}
	return statex.CategoryUnset, false
}
