package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	specialistx "github.com/pattarav/supportline/agent/agents/specialist"
	triagex "github.com/pattarav/supportline/agent/agents/triage"
	contractx "github.com/pattarav/supportline/agent/contract"
	promptx "github.com/pattarav/supportline/agent/prompt"
	statex "github.com/pattarav/supportline/agent/state"
)

type fakeClassifier struct {
	responses []string
	err       error
	idx       int
	prompts   []string
}

func (f *fakeClassifier) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if f.idx >= len(f.responses) {
		return "", errors.New("no fake response left")
	}
	resp := f.responses[f.idx]
	f.idx++
	return resp, nil
}

type testRegistry struct {
	triage    contractx.Triage
	billing   contractx.Handler
	technical contractx.Handler
	general   contractx.Handler
}

func (r *testRegistry) Triage() contractx.Triage {
	return r.triage
}

func (r *testRegistry) Handler(c statex.Category) contractx.Handler {
	switch c {
	case statex.CategoryBilling:
		return r.billing
	case statex.CategoryTechnical:
		return r.technical
	default:
		return r.general
	}
}

// newTestRegistry wires real triage and specialist components around scripted
// classifiers, so controller tests exercise the full path minus the network.
func newTestRegistry(t *testing.T, triageFake, billingFake, technicalFake, generalFake *fakeClassifier) contractx.Registry {
	t.Helper()
	prompts := promptx.LoadPromptSet()

	router, err := triagex.NewRouter(triageFake, prompts.Triage)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	billing, err := specialistx.New(statex.CategoryBilling, billingFake, prompts.Specialist)
	if err != nil {
		t.Fatalf("New(billing) error = %v", err)
	}
	technical, err := specialistx.New(statex.CategoryTechnical, technicalFake, prompts.Specialist)
	if err != nil {
		t.Fatalf("New(technical) error = %v", err)
	}
	general, err := specialistx.New(statex.CategoryGeneral, generalFake, prompts.Specialist)
	if err != nil {
		t.Fatalf("New(general) error = %v", err)
	}

	return &testRegistry{
		triage:    router,
		billing:   billing,
		technical: technical,
		general:   general,
	}
}

func newTestController(t *testing.T, registry contractx.Registry, input string, cfg Config) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c, err := New(registry, strings.NewReader(input), &out, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, &out
}

func TestPremiumRefundEndToEnd(t *testing.T) {
	t.Parallel()

	billingFake := &fakeClassifier{responses: []string{"TOOL:process_refund"}}
	registry := newTestRegistry(t,
		&fakeClassifier{responses: []string{"billing"}},
		billingFake,
		&fakeClassifier{},
		&fakeClassifier{},
	)

	input := "I was charged twice this month\nplease refund the duplicate\nno\n"
	c, out := newTestController(t, registry, input, Config{UserName: "Aamna", Premium: true})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	printed := out.String()
	if !strings.Contains(printed, "Your query has been categorized as: billing. Transferring you to the billing specialist.") {
		t.Fatalf("missing handoff message:\n%s", printed)
	}
	if !strings.Contains(printed, "Used process_refund: Your refund has been processed successfully. It will reflect in your account within 5-7 business days.") {
		t.Fatalf("missing refund result:\n%s", printed)
	}
	if len(billingFake.prompts) != 1 || !strings.Contains(billingFake.prompts[0], "process_refund") {
		t.Fatalf("premium billing prompt must offer process_refund: %#v", billingFake.prompts)
	}
	if c.State().QueryCount() != 1 {
		t.Fatalf("only the triage query counts, got %d", c.State().QueryCount())
	}
	if c.Phase() != statex.PhaseEnded {
		t.Fatalf("session should have ended, phase=%s", c.Phase())
	}
}

func TestNonPremiumRefundRefusedEndToEnd(t *testing.T) {
	t.Parallel()

	billingFake := &fakeClassifier{responses: []string{"TOOL:process_refund"}}
	registry := newTestRegistry(t,
		&fakeClassifier{responses: []string{"billing"}},
		billingFake,
		&fakeClassifier{},
		&fakeClassifier{},
	)

	input := "I was charged twice this month\nplease refund the duplicate\nno\n"
	c, out := newTestController(t, registry, input, Config{UserName: "Aamna", Premium: false})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	printed := out.String()
	if strings.Contains(printed, "Used process_refund") {
		t.Fatalf("refund must not run for non-premium users:\n%s", printed)
	}
	if !strings.Contains(printed, "I'm sorry, that action is not available for your account.") {
		t.Fatalf("missing billing refusal:\n%s", printed)
	}
	if strings.Contains(billingFake.prompts[0], "process_refund") {
		t.Fatalf("gated action offered to non-premium user:\n%s", billingFake.prompts[0])
	}
}

func TestQuitAtFirstTurn(t *testing.T) {
	t.Parallel()

	triageFake := &fakeClassifier{responses: []string{"billing"}}
	registry := newTestRegistry(t, triageFake, &fakeClassifier{}, &fakeClassifier{}, &fakeClassifier{})

	c, out := newTestController(t, registry, "quit\n", Config{UserName: "Guest"})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(triageFake.prompts) != 0 {
		t.Fatal("quit must not reach the classifier")
	}
	if c.State().QueryCount() != 0 {
		t.Fatalf("quit-first session must record zero queries, got %d", c.State().QueryCount())
	}
	printed := out.String()
	if !strings.Contains(printed, "Thank you for using our support system. Goodbye!") {
		t.Fatalf("missing goodbye:\n%s", printed)
	}
	if !strings.Contains(printed, "Queries Handled: 0") {
		t.Fatalf("summary must report zero queries:\n%s", printed)
	}
}

func TestContinueKeepsSameSpecialist(t *testing.T) {
	t.Parallel()

	technicalFake := &fakeClassifier{responses: []string{
		"Try clearing the cache first.",
		"TOOL:restart_service",
	}}
	generalFake := &fakeClassifier{}
	registry := newTestRegistry(t,
		&fakeClassifier{responses: []string{"technical"}},
		&fakeClassifier{},
		technicalFake,
		generalFake,
	)

	// Second specialist turn drifts off topic; it must still hit the
	// technical handler because the session never re-triages.
	input := "the app keeps crashing\nstill broken\nyes\nalso, how do refunds work? anyway restart it\nno\n"
	c, out := newTestController(t, registry, input, Config{UserName: "Dev", Premium: false})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(technicalFake.prompts) != 2 {
		t.Fatalf("expected both specialist turns on the technical handler, got %d", len(technicalFake.prompts))
	}
	if len(generalFake.prompts) != 0 {
		t.Fatal("general handler must not be consulted after a technical handoff")
	}

	printed := out.String()
	if !strings.Contains(printed, "Used restart_service: The service has been restarted successfully.") {
		t.Fatalf("restart should be allowed in a technical session:\n%s", printed)
	}
	if !strings.Contains(printed, "How can I help you further?") {
		t.Fatalf("missing continue prompt:\n%s", printed)
	}
	if c.State().QueryCount() != 1 {
		t.Fatalf("specialist turns must not be recorded, got %d", c.State().QueryCount())
	}
}

func TestTriageFailureFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	generalFake := &fakeClassifier{responses: []string{"Happy to help with that."}}
	registry := newTestRegistry(t,
		&fakeClassifier{err: errors.New("provider unavailable")},
		&fakeClassifier{},
		&fakeClassifier{},
		generalFake,
	)

	input := "hello there\nwhat services do you offer\nno\n"
	c, out := newTestController(t, registry, input, Config{})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if c.State().Category != statex.CategoryGeneral {
		t.Fatalf("triage failure must resolve to general, got %s", c.State().Category)
	}
	if len(generalFake.prompts) != 1 {
		t.Fatalf("general handler should have answered, calls=%d", len(generalFake.prompts))
	}
	if !strings.Contains(out.String(), "categorized as: general") {
		t.Fatalf("handoff must name general:\n%s", out.String())
	}
}

func TestSpecialistFailureKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(t,
		&fakeClassifier{responses: []string{"billing"}},
		&fakeClassifier{err: errors.New("rate limited")},
		&fakeClassifier{},
		&fakeClassifier{},
	)

	input := "billing question\nrefund me\nno\n"
	c, out := newTestController(t, registry, input, Config{Premium: true})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	printed := out.String()
	if !strings.Contains(printed, "I apologize, I encountered an error processing your billing request:") {
		t.Fatalf("missing apology:\n%s", printed)
	}
	if !strings.Contains(printed, "rate limited") {
		t.Fatalf("apology must embed the failure detail:\n%s", printed)
	}
	if !strings.Contains(printed, "Session Summary:") {
		t.Fatalf("session must end normally with a summary:\n%s", printed)
	}
}

func TestEOFEndsWithSummary(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(t,
		&fakeClassifier{responses: []string{"billing"}},
		&fakeClassifier{responses: []string{"Sure, here is what I found."}},
		&fakeClassifier{},
		&fakeClassifier{},
	)

	// Input stream ends while the controller is still awaiting a turn.
	c, out := newTestController(t, registry, "billing question\n", Config{UserName: "Aamna", Premium: true})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	printed := out.String()
	if !strings.Contains(printed, "User: Aamna") || !strings.Contains(printed, "Premium: Yes") {
		t.Fatalf("summary must report user and premium flag:\n%s", printed)
	}
	if !strings.Contains(printed, "Issue Type: billing") {
		t.Fatalf("summary must report the last category:\n%s", printed)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, strings.NewReader(""), &bytes.Buffer{}, Config{}); err == nil {
		t.Fatal("expected error for nil registry")
	}
}
