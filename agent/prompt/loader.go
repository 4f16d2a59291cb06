package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/triage.txt
	triageRaw string

	//go:embed template/specialist.txt
	specialistRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Triage     string
	Specialist string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Triage:     strings.TrimSpace(triageRaw),
		Specialist: strings.TrimSpace(specialistRaw),
	}
}

// Render substitutes {name} placeholders in a template. Unknown placeholders
// are left in place so a missing variable is visible in the prompt rather than
// silently blank.
func Render(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
