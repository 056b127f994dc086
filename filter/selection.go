// Package filter holds the selection logic behind the task list filters: toggling tags,
// searching the catalog, and keeping a date range inside the allowed window.
package filter

import (
	"strings"

	"github.com/kario-app/taskfilter/store"
	"golang.org/x/text/cases"
)

// Toggle removes name from selected if present, otherwise appends it.
// selected is never modified.
func Toggle(selected []string, name string) []string {
	res := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == name {
			found = true
			continue
		}
		res = append(res, s)
	}
	if !found {
		res = append(res, name)
	}
	return res
}

// Search keeps the tags whose name contains query, ignoring case.
func Search(tags store.Tags, query string) store.Tags {
	fold := cases.Fold()
	q := fold.String(query)

	res := store.Tags{}
	for _, tag := range tags {
		if strings.Contains(fold.String(tag.Name), q) {
			res = append(res, tag)
		}
	}
	return res
}
