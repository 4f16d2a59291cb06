package specialist

import (
	"fmt"

	triagex "github.com/pattarav/supportline/agent/agents/triage"
	contractx "github.com/pattarav/supportline/agent/contract"
	llmx "github.com/pattarav/supportline/agent/llm"
	promptx "github.com/pattarav/supportline/agent/prompt"
	statex "github.com/pattarav/supportline/agent/state"
	openrouterx "github.com/pattarav/supportline/pkg/openrouter"
)

type registryImpl struct {
	triage    contractx.Triage
	billing   contractx.Handler
	technical contractx.Handler
	general   contractx.Handler
}

func (r *registryImpl) Triage() contractx.Triage {
	return r.triage
}

// Handler returns the specialist bound to a category. Anything outside the
// closed enum resolves to general, mirroring the triage fallback.
func (r *registryImpl) Handler(c statex.Category) contractx.Handler {
	switch c {
	case statex.CategoryBilling:
		return r.billing
	case statex.CategoryTechnical:
		return r.technical
	default:
		return r.general
	}
}

// NewRegistry builds one classifier client per stage and wires the triage
// router plus the three specialists.
func NewRegistry(cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	triageClient, err := openrouterx.NewClient(cfg.OpenRouterFor(contractx.StageTriage))
	if err != nil {
		return nil, fmt.Errorf("create triage classifier: %w", err)
	}
	router, err := triagex.NewRouter(triageClient, prompts.Triage)
	if err != nil {
		return nil, err
	}

	handlers := make(map[statex.Category]contractx.Handler, 3)
	for _, category := range []statex.Category{
		statex.CategoryBilling,
		statex.CategoryTechnical,
		statex.CategoryGeneral,
	} {
		client, err := openrouterx.NewClient(cfg.OpenRouterFor(contractx.StageForCategory(category)))
		if err != nil {
			return nil, fmt.Errorf("create %s classifier: %w", category, err)
		}
		spec, err := New(category, client, prompts.Specialist)
		if err != nil {
			return nil, err
		}
		handlers[category] = spec
	}

	return &registryImpl{
		triage:    router,
		billing:   handlers[statex.CategoryBilling],
		technical: handlers[statex.CategoryTechnical],
		general:   handlers[statex.CategoryGeneral],
	}, nil
}
