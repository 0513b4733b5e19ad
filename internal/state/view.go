package state

import (
	"sort"
	"strings"

	"github.com/five82/backoffice/internal/api"
)

// View is the derived, read-only projection a list renders.
type View struct {
	Visible    []api.Item // current page of the filtered list
	Filtered   int        // items matching the query
	Total      int        // items in the canonical list
	TotalPages int        // max(1, ceil(Filtered/PageSize))
	Page       int        // requested page, not clamped
	PageSize   int
}

// OutOfRange reports whether the requested page needs a corrective SetPage.
func (v View) OutOfRange() bool {
	return v.Page < 1 || v.Page > v.TotalPages
}

// VisibleIDs returns the ids of the visible slice.
func (v View) VisibleIDs() []string {
	ids := make([]string, len(v.Visible))
	for i, it := range v.Visible {
		ids[i] = it.ID
	}
	return ids
}

// Derive sorts items newest first, filters them by a case-insensitive title
// substring and cuts out the requested page. items is not modified.
func Derive(items []api.Item, query string, page, pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	sorted := make([]api.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ParsedCreatedAt().After(sorted[j].ParsedCreatedAt())
	})

	needle := strings.ToLower(query)
	filtered := make([]api.Item, 0, len(sorted))
	for _, it := range sorted {
		if needle == "" || strings.Contains(strings.ToLower(it.Title), needle) {
			filtered = append(filtered, it)
		}
	}

	totalPages := max(1, (len(filtered)+pageSize-1)/pageSize)
	v := View{
		Filtered:   len(filtered),
		Total:      len(items),
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}

	start := (page - 1) * pageSize
	if start < 0 || start >= len(filtered) {
		v.Visible = []api.Item{}
		return v
	}
	end := min(start+pageSize, len(filtered))
	v.Visible = filtered[start:end]
	return v
}

// ClampPage returns page bounded to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(page, 1), totalPages)
}
