package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
)

func parseID(kind, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, s)
	}
	return id, nil
}

// dirtyIDs maps the ids with unsaved drafts.
func dirtyIDs[T interface{ GetID() int }](x interface{ IsDirty(int) bool }, items []T) map[int]bool {
	out := make(map[int]bool)
	for _, it := range items {
		if x.IsDirty(it.GetID()) {
			out[it.GetID()] = true
		}
	}
	return out
}

// templateSummaries resolves template ids of assignment aID.
func templateSummaries(app *App, aID int, ids []int) ([]domain.TemplateSummary, error) {
	out := make([]domain.TemplateSummary, 0, len(ids))
	for _, id := range ids {
		t, ok := app.Store.Templates.Find(aID, id)
		if !ok {
			return nil, fmt.Errorf("template %d: %w", id, editor.ErrUnknownEntity)
		}
		out = append(out, t.Summary())
	}
	return out, nil
}

// categorySummaries resolves category ids of assignment aID.
func categorySummaries(app *App, aID int, ids []int) ([]domain.CategorySummary, error) {
	out := make([]domain.CategorySummary, 0, len(ids))
	for _, id := range ids {
		c, ok := app.Store.Categories.Find(aID, id)
		if !ok {
			return nil, fmt.Errorf("category %d: %w", id, editor.ErrUnknownEntity)
		}
		out = append(out, c.Summary())
	}
	return out, nil
}

// relink adds the items of add missing from links and drops those in
// remove.
func relink[S any](links []S, add []S, remove []int, id func(S) int) []S {
	out := slices.DeleteFunc(slices.Clone(links), func(s S) bool {
		return slices.Contains(remove, id(s))
	})
	for _, a := range add {
		if !slices.ContainsFunc(out, func(s S) bool { return id(s) == id(a) }) {
			out = append(out, a)
		}
	}
	return out
}

func templateSummaryID(s domain.TemplateSummary) int { return s.ID }
func categorySummaryID(s domain.CategorySummary) int { return s.ID }
