package chores

import (
	"sort"
	"strings"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// DefaultCategory is used when a task has no category.
const DefaultCategory = "Misc"

// Categories is the household category list, alphabetical.
var Categories = []string{
	"Bathroom", "Bedroom", "Closet", "Floors", "Kitchen", "Laundry", "Litter",
	"Misc", "Outdoor", "Pantry", "Shelving", "Walls", "Windows",
}

// CategoryOrder is the order pending tasks are grouped in on the agenda.
var CategoryOrder = []string{
	"Litter", "Kitchen", "Bathroom", "Bedroom", "Floors", "Misc", "Shelving",
	"Windows", "Outdoor", "Pantry", "Laundry", "Walls", "Closet",
}

var categoryColors = map[string]string{
	"Bathroom": "#7ECFC0", "Kitchen": "#F4A261", "Floors": "#C4A882",
	"Bedroom": "#B09EE8", "Litter": "#F0A0C0", "Misc": "#7BAFD4",
	"Windows": "#74C0FC", "Shelving": "#9DC97A", "Outdoor": "#52B788",
	"Pantry": "#F0C850", "Laundry": "#90B8D8", "Walls": "#D4A5A5", "Closet": "#D4B84A",
}

// CategoryColor returns the display color for a category.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return categoryColors[DefaultCategory]
}

// NormalizeCategories trims, drops blanks and duplicates, and guarantees a
// non-empty result.
func NormalizeCategories(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return []string{DefaultCategory}
	}
	return out
}

// PrimaryCategory is the category a task is grouped under.
func PrimaryCategory(t recurrence.Task) string {
	cats := NormalizeCategories(t.Categories)
	return cats[0]
}

// SortCategories orders categories by CategoryOrder; unknown ones follow
// alphabetically.
func SortCategories(cats []string) {
	sort.SliceStable(cats, func(i, j int) bool {
		ri, rj := categoryRank(cats[i]), categoryRank(cats[j])
		if ri != rj {
			return ri < rj
		}
		return cats[i] < cats[j]
	})
}

func categoryRank(c string) int {
	for i, known := range CategoryOrder {
		if known == c {
			return i
		}
	}
	return len(CategoryOrder)
}
