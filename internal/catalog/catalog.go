// Package catalog builds feature comparison tables and edition cards from a
// dataset and formats them as markdown.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

// ErrUnknownEdition is returned for an edition id not in the dataset.
var ErrUnknownEdition = errors.New("unknown edition")

// Filter narrows a comparison. Zero values select everything.
type Filter struct {
	Categories    []dataset.Category
	MinImportance int
	Editions      []string
}

// Row is one feature across the compared editions.
type Row struct {
	Feature  dataset.Feature
	Statuses []dataset.Status // in Table.Editions order
}

// Group is the rows of one category.
type Group struct {
	Category dataset.Category
	Rows     []Row
}

// Table is a feature-by-edition comparison.
type Table struct {
	Editions []dataset.Edition
	Groups   []Group
}

// Len returns the number of feature rows.
func (t Table) Len() int {
	return lo.SumBy(t.Groups, func(g Group) int { return len(g.Rows) })
}

// byImportance orders features by importance, most important first, then by name.
func byImportance(a, b dataset.Feature) int {
	if c := cmp.Compare(b.Importance, a.Importance); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Compare builds a comparison table. Categories appear in display order and
// empty categories are left out.
func Compare(ds *dataset.Dataset, f Filter) (Table, error) {
	editions := ds.Editions()
	if len(f.Editions) > 0 {
		if unknown, _ := lo.Difference(f.Editions, lo.Map(editions, func(e dataset.Edition, _ int) string { return e.ID })); len(unknown) > 0 {
			return Table{}, fmt.Errorf("%v: %w", unknown, ErrUnknownEdition)
		}
		editions = lo.Filter(editions, func(e dataset.Edition, _ int) bool { return lo.Contains(f.Editions, e.ID) })
	}

	features := lo.Filter(ds.Features(), func(ft dataset.Feature, _ int) bool {
		if ft.Importance < f.MinImportance {
			return false
		}
		return len(f.Categories) == 0 || lo.Contains(f.Categories, ft.Category)
	})
	byCategory := lo.GroupBy(features, func(ft dataset.Feature) dataset.Category { return ft.Category })

	t := Table{Editions: editions}
	for _, c := range dataset.Categories() {
		fs, ok := byCategory[c]
		if !ok {
			continue
		}
		slices.SortStableFunc(fs, byImportance)
		t.Groups = append(t.Groups, Group{
			Category: c,
			Rows: lo.Map(fs, func(ft dataset.Feature, _ int) Row {
				return Row{
					Feature:  ft,
					Statuses: lo.Map(editions, func(e dataset.Edition, _ int) dataset.Status { return e.Status(ft.ID) }),
				}
			}),
		})
	}
	return t, nil
}

// Card summarises one edition: its features bucketed by status.
type Card struct {
	Edition  dataset.Edition
	Buckets  map[dataset.Status][]dataset.Feature
	Coverage int // percent of features present
}

// EditionCard builds the card for an edition.
func EditionCard(ds *dataset.Dataset, editionID string) (Card, error) {
	ed, ok := ds.Edition(editionID)
	if !ok {
		return Card{}, fmt.Errorf("%q: %w", editionID, ErrUnknownEdition)
	}
	features := ds.Features()
	buckets := lo.GroupBy(features, func(ft dataset.Feature) dataset.Status { return ed.Status(ft.ID) })
	for _, fs := range buckets {
		slices.SortStableFunc(fs, byImportance)
	}
	present := len(buckets[dataset.StatusPresent])
	return Card{
		Edition:  *ed,
		Buckets:  buckets,
		Coverage: present * 100 / max(len(features), 1),
	}, nil
}
