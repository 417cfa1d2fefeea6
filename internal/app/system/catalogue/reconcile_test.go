package catalogue

import (
	"testing"

	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/domain/models"
)

func section(category string, order int, status string) models.Section {
	return models.Section{
		Category: category,
		Order:    models.FlexInt{Value: order, Valid: true},
		Status:   status,
	}
}

func material(id, category string) models.Material {
	return models.Material{ID: models.FlexID(id), Category: category, IsPublic: true}
}

func sectionKeys(c Catalogue) []string {
	keys := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		keys = append(keys, s.GroupLabel())
	}
	return keys
}

func TestReconcileDropsUnpublishedSections(t *testing.T) {
	got := Reconcile([]models.Section{
		section("Certification", 1, "published"),
		section("Reporting", 2, "draft"),
		section("Training", 3, "Published"), // status matching is case-insensitive
	}, nil, Options{})

	want := []string{"Certification", "Training"}
	keys := sectionKeys(got)
	if len(keys) != len(want) {
		t.Fatalf("sections = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestReconcileDeduplicatesSectionsLastWins(t *testing.T) {
	first := section("Certification", 1, "published")
	first.Content = "<p>old</p>"
	second := section("  certification ", 1, "published")
	second.Content = "<p>new</p>"

	got := Reconcile([]models.Section{first, second}, nil, Options{})

	if len(got.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(got.Sections))
	}
	if got.Sections[0].Content != "<p>new</p>" {
		t.Errorf("surviving section content = %q, want the later record", got.Sections[0].Content)
	}
}

func TestReconcileNoDuplicateKeysSurvive(t *testing.T) {
	sections := []models.Section{
		section("A", 1, "published"),
		section("a ", 2, "published"),
		section("B", 3, "published"),
		section("  b", 4, "published"),
		{Title: "C", Status: "published"},
		{Title: "c", Status: "published"},
	}

	got := Reconcile(sections, nil, Options{})

	seen := make(map[string]bool)
	for _, s := range got.Sections {
		key := normalize.Key(s.GroupLabel())
		if seen[key] {
			t.Errorf("duplicate normalized key %q survived reconciliation", key)
		}
		seen[key] = true
	}
}

func TestReconcileSortStableWithSentinel(t *testing.T) {
	sections := []models.Section{
		section("Third", 5, "published"),
		{Category: "LastA", Status: "published"}, // no order: sorts last
		section("First", 1, "published"),
		{Category: "LastB", Status: "published", Order: models.FlexInt{}},
		section("Second", 1, "published"), // ties keep input order
	}

	got := Reconcile(sections, nil, Options{})

	want := []string{"First", "Second", "Third", "LastA", "LastB"}
	keys := sectionKeys(got)
	if len(keys) != len(want) {
		t.Fatalf("sections = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	for i := 1; i < len(got.Sections); i++ {
		if got.Sections[i-1].EffectiveOrder() > got.Sections[i].EffectiveOrder() {
			t.Errorf("effective order not monotonic at %d: %d > %d",
				i, got.Sections[i-1].EffectiveOrder(), got.Sections[i].EffectiveOrder())
		}
	}
}

func TestReconcileDeduplicatesMaterialsFirstWins(t *testing.T) {
	sections := []models.Section{section("A", 1, "published")}
	dup := material("1", "A")
	dup.Title = "second copy"
	first := material("1", "A")
	first.Title = "first copy"

	got := Reconcile(sections, []models.Material{first, dup}, Options{})

	mats := got.MaterialsFor(sections[0])
	if len(mats) != 1 {
		t.Fatalf("got %d materials, want 1", len(mats))
	}
	if mats[0].Title != "first copy" {
		t.Errorf("surviving material = %q, want the first record", mats[0].Title)
	}
}

func TestReconcileDropsOrphanMaterials(t *testing.T) {
	got := Reconcile(
		[]models.Section{section("A", 1, "published")},
		[]models.Material{material("1", "A"), material("2", "Nowhere")},
		Options{},
	)

	total := 0
	for _, mats := range got.MaterialsBySection {
		total += len(mats)
	}
	if total != 1 {
		t.Errorf("got %d materials, want 1 (orphan dropped silently)", total)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	got := Reconcile(nil, nil, Options{})
	if len(got.Sections) != 0 {
		t.Errorf("got %d sections from empty input, want 0", len(got.Sections))
	}
	if !got.IsEmpty() {
		t.Error("catalogue from empty input should be empty")
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	sections := []models.Section{
		section("A", 2, "Published"),
		section("B", 1, "Published"),
		section("A", 5, "Draft"),
	}
	materials := []models.Material{
		material("1", "A"),
		material("1", "A"),
		material("2", "B"),
	}

	got := Reconcile(sections, materials, Options{})

	keys := sectionKeys(got)
	if len(keys) != 2 || keys[0] != "B" || keys[1] != "A" {
		t.Fatalf("sections = %v, want [B A]", keys)
	}
	if mats := got.MaterialsBySection["b"]; len(mats) != 1 || mats[0].ID != "2" {
		t.Errorf("materials under B = %v, want [id:2]", mats)
	}
	if mats := got.MaterialsBySection["a"]; len(mats) != 1 || mats[0].ID != "1" {
		t.Errorf("materials under A = %v, want [id:1]", mats)
	}
}

func TestReconcileCategoryFilter(t *testing.T) {
	sections := []models.Section{
		section("A", 2, "Published"),
		section("B", 1, "Published"),
	}

	got := Reconcile(sections, nil, Options{Category: "a"})
	keys := sectionKeys(got)
	if len(keys) != 1 || keys[0] != "A" {
		t.Errorf("filtered sections = %v, want [A]", keys)
	}

	// Exact normalized match, not substring.
	got = Reconcile([]models.Section{section("Apple", 1, "published")}, nil, Options{Category: "app"})
	if len(got.Sections) != 0 {
		t.Errorf("substring filter matched %v, want no sections", sectionKeys(got))
	}
}

func TestFilterVisible(t *testing.T) {
	sections := []models.Section{section("A", 1, "published")}
	private := material("1", "A")
	private.IsPublic = false
	gated := material("2", "A")
	gated.RequiresAssessment = true
	open := material("3", "A")

	cat := Reconcile(sections, []models.Material{private, gated, open}, Options{})

	anon := cat.FilterVisible(models.Anonymous())
	if mats := anon.MaterialsBySection["a"]; len(mats) != 1 || mats[0].ID != "3" {
		t.Errorf("anonymous viewer sees %v, want only id:3", mats)
	}

	completed := cat.FilterVisible(models.ViewerContext{IsLoggedIn: true, HasCompletedAssessment: true})
	if mats := completed.MaterialsBySection["a"]; len(mats) != 3 {
		t.Errorf("completed viewer sees %d materials, want 3", len(mats))
	}

	// Sections survive even when everything under them is gated.
	allGated := cat.FilterVisible(models.ViewerContext{})
	if len(allGated.Sections) != 1 {
		t.Errorf("gating removed sections: got %d, want 1", len(allGated.Sections))
	}
}
