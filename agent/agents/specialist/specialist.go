package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/pattarav/supportline/agent/contract"
	promptx "github.com/pattarav/supportline/agent/prompt"
	statex "github.com/pattarav/supportline/agent/state"
	toolx "github.com/pattarav/supportline/agent/tool"
)

const toolDirectivePrefix = "TOOL:"

// Specialist is the one generic handler behind all three categories. Per-domain
// behavior comes entirely from its parameters: the action registry, the refusal
// wording, and the apology wording.
type Specialist struct {
	category   statex.Category
	classifier contractx.Classifier
	template   string
	actions    []toolx.Action
	refusal    string
	apology    string
}

func New(category statex.Category, classifier contractx.Classifier, template string) (*Specialist, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("%w: specialist template", contractx.ErrPromptMissing)
	}

	actions := toolx.Catalog(category)
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no action registry for category=%q", contractx.ErrValidation, category)
	}

	return &Specialist{
		category:   category,
		classifier: classifier,
		template:   template,
		actions:    actions,
		refusal:    refusalFor(category),
		apology:    apologyFor(category),
	}, nil
}

func (s *Specialist) Category() statex.Category {
	return s.category
}

// Available filters the registry by each action's gating predicate against the
// turn snapshot.
func (s *Specialist) Available(snap statex.Snapshot) []toolx.Action {
	return toolx.Available(s.actions, snap)
}

// Handle answers one specialist-stage query. The classifier either proposes an
// action via a TOOL: directive or replies directly; a directive naming an
// unknown or gate-disabled action yields the refusal string, and a classifier
// failure yields the apology string. Neither path is an error to the session.
func (s *Specialist) Handle(ctx context.Context, query string, snap statex.Snapshot) string {
	available := s.Available(snap)

	prompt := promptx.Render(s.template, map[string]string{
		"role":  string(s.category),
		"query": query,
		"tools": strings.Join(toolx.Names(available), ", "),
	})

	raw, err := s.classifier.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("category", string(s.category)).Msg("specialist classifier call failed")
		return fmt.Sprintf(s.apology, err)
	}

	reply := strings.TrimSpace(raw)
	name, ok := parseToolDirective(reply)
	if !ok {
		return reply
	}

	action, found := toolx.Find(s.actions, name)
	if !found || !action.EnabledFor(snap) {
		log.Info().
			Str("category", string(s.category)).
			Str("tool", name).
			Bool("known", found).
			Msg("refusing gated or unknown tool")
		return s.refusal
	}

	result := action.Run(query)
	log.Info().Str("category", string(s.category)).Str("tool", action.Name).Msg("simulated action invoked")
	return fmt.Sprintf("Used %s: %s", action.Name, result)
}

// parseToolDirective extracts the action name from a TOOL:<name> reply: the
// text after the first colon, first line only, trimmed.
func parseToolDirective(reply string) (string, bool) {
	if !strings.HasPrefix(reply, toolDirectivePrefix) {
		return "", false
	}
	name := reply[len(toolDirectivePrefix):]
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name), true
}

func refusalFor(category statex.Category) string {
	switch category {
	case statex.CategoryBilling:
		return "I'm sorry, that action is not available for your account."
	case statex.CategoryTechnical:
		return "I'm sorry, that action is not available for your account or issue type."
	default:
		return "I'm sorry, that action is not available."
	}
}

func apologyFor(category statex.Category) string {
	switch category {
	case statex.CategoryBilling:
		return "I apologize, I encountered an error processing your billing request: %v"
	case statex.CategoryTechnical:
		return "I apologize, I encountered an error processing your technical request: %v"
	default:
		return "I apologize, I encountered an error processing your request: %v"
	}
}
