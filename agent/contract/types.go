package contract

import (
	statex "github.com/pattarav/supportline/agent/state"
)

// Stage identifies which model configuration a classifier call runs under.
// Triage has its own stage; the remaining stages map 1:1 onto categories.
type Stage string

const (
	StageTriage    Stage = "triage"
	StageBilling   Stage = "billing"
	StageTechnical Stage = "technical"
	StageGeneral   Stage = "general"
)

func StageForCategory(c statex.Category) Stage {
	switch c {
	case statex.CategoryBilling:
		return StageBilling
	case statex.CategoryTechnical:
		return StageTechnical
	default:
		return StageGeneral
	}
}

// RouteResult is what triage hands back: the resolved category and the
// user-facing handoff message naming it.
type RouteResult struct {
	Category statex.Category
	Message  string
}
