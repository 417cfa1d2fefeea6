// Package catalogue derives the display-ready learning-materials catalogue
// from raw section and material records fetched from the content API.
//
// The functions here are pure and total: they never fetch, never cache, and
// never fail. Malformed fields fall back to the defaults defined on the
// models, and empty inputs yield an empty catalogue.
package catalogue

import (
	"sort"

	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/domain/models"
)

// Catalogue is the reconciled result: publishable sections in display order
// and their materials grouped by normalized section key.
type Catalogue struct {
	Sections           []models.Section
	MaterialsBySection map[string][]models.Material
}

// Options adjusts a reconciliation.
type Options struct {
	// Category, when non-empty, restricts the section list to the single
	// section whose normalized key equals the normalized filter value.
	// Exact match, not substring.
	Category string
}

// Reconcile merges, deduplicates, orders, and filters the raw records into
// a Catalogue:
//
//   - only published sections survive
//   - sections are deduplicated by normalized key, last occurrence wins
//   - surviving sections sort ascending by effective order; the sort is
//     stable, so ties preserve input order
//   - materials are deduplicated by id, first occurrence wins
//   - materials group under the section whose normalized key matches their
//     normalized category; materials matching no surviving section are
//     dropped from the display set
func Reconcile(sections []models.Section, materials []models.Material, opts Options) Catalogue {
	type keyed struct {
		key     string
		section models.Section
	}

	// Published sections only, deduplicated by normalized key. A later
	// record replaces an earlier one in place, keeping the earlier slot so
	// the subsequent sort stays stable in input order.
	var survivors []keyed
	slot := make(map[string]int)
	for _, s := range sections {
		if !s.IsPublished() {
			continue
		}
		key := normalize.Key(s.GroupLabel())
		if key == "" {
			continue
		}
		if i, seen := slot[key]; seen {
			survivors[i].section = s
			continue
		}
		slot[key] = len(survivors)
		survivors = append(survivors, keyed{key: key, section: s})
	}

	if filter := normalize.Key(opts.Category); filter != "" {
		filtered := survivors[:0]
		for _, k := range survivors {
			if k.key == filter {
				filtered = append(filtered, k)
			}
		}
		survivors = filtered
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].section.EffectiveOrder() < survivors[j].section.EffectiveOrder()
	})

	result := Catalogue{
		Sections:           make([]models.Section, 0, len(survivors)),
		MaterialsBySection: make(map[string][]models.Material, len(survivors)),
	}
	keep := make(map[string]bool, len(survivors))
	for _, k := range survivors {
		result.Sections = append(result.Sections, k.section)
		keep[k.key] = true
	}

	// Materials deduplicated by id, first occurrence wins; orphans dropped.
	seen := make(map[models.FlexID]bool, len(materials))
	for _, m := range materials {
		if m.ID != "" {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
		}
		key := normalize.Key(m.Category)
		if !keep[key] {
			continue
		}
		result.MaterialsBySection[key] = append(result.MaterialsBySection[key], m)
	}

	return result
}

// MaterialsFor returns the materials grouped under a section.
func (c Catalogue) MaterialsFor(s models.Section) []models.Material {
	return c.MaterialsBySection[normalize.Key(s.GroupLabel())]
}

// FilterVisible returns a copy of the catalogue with every material the
// viewer may not see removed. Sections are kept even when all of their
// materials are gated, so the section headings still render.
func (c Catalogue) FilterVisible(viewer models.ViewerContext) Catalogue {
	out := Catalogue{
		Sections:           c.Sections,
		MaterialsBySection: make(map[string][]models.Material, len(c.MaterialsBySection)),
	}
	for key, mats := range c.MaterialsBySection {
		var visible []models.Material
		for _, m := range mats {
			if Visible(m, viewer) {
				visible = append(visible, m)
			}
		}
		if len(visible) > 0 {
			out.MaterialsBySection[key] = visible
		}
	}
	return out
}

// IsEmpty reports whether the catalogue has no materials at all.
func (c Catalogue) IsEmpty() bool {
	for _, mats := range c.MaterialsBySection {
		if len(mats) > 0 {
			return false
		}
	}
	return true
}
