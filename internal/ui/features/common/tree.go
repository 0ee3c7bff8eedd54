package common

import (
	"sort"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// BuildCategoryGroups files documents under their categories. Groups follow
// the category display order; documents whose category is unknown are
// collected in a trailing "Annet" group. Empty categories are kept so the
// overview shows every category.
func BuildCategoryGroups(categories []*core.Category, docs []*core.Document) []CategoryGroup {
	ordered := make([]*core.Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	index := make(map[string]int, len(ordered))
	groups := make([]CategoryGroup, 0, len(ordered)+1)
	for _, c := range ordered {
		index[c.Name] = len(groups)
		groups = append(groups, CategoryGroup{
			Name:        c.Name,
			Icon:        c.Icon,
			Color:       c.Color,
			Description: c.Description,
			Documents:   []DocumentItem{},
		})
	}

	var other []DocumentItem
	for _, d := range docs {
		item := ToDocumentItem(d)
		if i, ok := index[d.Category]; ok {
			groups[i].Documents = append(groups[i].Documents, item)
			continue
		}
		other = append(other, item)
	}

	if len(other) > 0 {
		groups = append(groups, CategoryGroup{Name: "Annet", Icon: "📁", Documents: other})
	}
	return groups
}

// ToDocumentItem converts a document for listings.
func ToDocumentItem(d *core.Document) DocumentItem {
	return DocumentItem{
		ID:       d.ID,
		Title:    d.Title,
		Category: d.Category,
		Status:   d.Status,
		Priority: d.Priority,
		Date:     d.DatePublished,
		URL:      d.URL,
	}
}

// ToDocumentItems converts a slice of documents.
func ToDocumentItems(docs []*core.Document) []DocumentItem {
	items := make([]DocumentItem, len(docs))
	for i, d := range docs {
		items[i] = ToDocumentItem(d)
	}
	return items
}
