package tool

import (
	"testing"

	statex "github.com/pattarav/supportline/agent/state"
)

func TestCatalogBilling(t *testing.T) {
	t.Parallel()

	actions := Catalog(statex.CategoryBilling)
	if len(actions) != 3 {
		t.Fatalf("expected 3 billing actions, got %d", len(actions))
	}
	if actions[0].Name != "process_refund" {
		t.Fatalf("unexpected first action: %s", actions[0].Name)
	}

	premium := statex.Snapshot{Premium: true, Category: statex.CategoryBilling}
	free := statex.Snapshot{Premium: false, Category: statex.CategoryBilling}

	if got := Names(Available(actions, premium)); len(got) != 3 {
		t.Fatalf("premium user should see all billing actions, got %v", got)
	}
	got := Names(Available(actions, free))
	if len(got) != 2 {
		t.Fatalf("non-premium user should see 2 billing actions, got %v", got)
	}
	for _, name := range got {
		if name == "process_refund" {
			t.Fatal("process_refund must be gated off for non-premium users")
		}
	}
}

func TestCatalogTechnicalRestartGatedByCategory(t *testing.T) {
	t.Parallel()

	actions := Catalog(statex.CategoryTechnical)
	if len(actions) != 3 {
		t.Fatalf("expected 3 technical actions, got %d", len(actions))
	}

	onTopic := statex.Snapshot{Category: statex.CategoryTechnical}
	offTopic := statex.Snapshot{Category: statex.CategoryBilling}

	restart, ok := Find(actions, "restart_service")
	if !ok {
		t.Fatal("restart_service missing from technical registry")
	}
	if !restart.EnabledFor(onTopic) {
		t.Fatal("restart_service should be enabled when session category is technical")
	}
	if restart.EnabledFor(offTopic) {
		t.Fatal("restart_service must be disabled for other categories")
	}
}

func TestCatalogGeneralHasNoGating(t *testing.T) {
	t.Parallel()

	actions := Catalog(statex.CategoryGeneral)
	if len(actions) != 2 {
		t.Fatalf("expected 2 general actions, got %d", len(actions))
	}
	got := Names(Available(actions, statex.Snapshot{}))
	if len(got) != 2 {
		t.Fatalf("general actions must always be available, got %v", got)
	}
}

func TestFindTrimsName(t *testing.T) {
	t.Parallel()

	actions := Catalog(statex.CategoryGeneral)
	if _, ok := Find(actions, "  escalate_issue "); !ok {
		t.Fatal("Find should tolerate surrounding whitespace")
	}
	if _, ok := Find(actions, "unknown_tool"); ok {
		t.Fatal("Find must not match unknown names")
	}
}

func TestActionResultsAreDeterministic(t *testing.T) {
	t.Parallel()

	refund, _ := Find(Catalog(statex.CategoryBilling), "process_refund")
	if refund.Run("any query") != refund.Run("another query") {
		t.Fatal("simulated actions must ignore the query text")
	}
	if refund.Run("") == "" {
		t.Fatal("simulated actions must return a canned message")
	}
}
