package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

// FilterDocuments returns the documents whose text contains query or whose
// decimal id contains it. A blank query returns a copy of docs. The result
// never shares memory with the input.
func FilterDocuments(docs []domain.Document, query string) []domain.Document {
	key := strings.TrimSpace(query)
	if key == "" {
		return slices.Clone(docs)
	}

	matched := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.Contains(doc.Text, key) || strings.Contains(doc.IDString(), key) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// SplitUpsertLines turns raw input into one upsert item per non-empty, trimmed line.
func SplitUpsertLines(raw string) []domain.UpsertItem {
	lines := strings.Split(raw, "\n")
	items := make([]domain.UpsertItem, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		items = append(items, domain.UpsertItem{Text: text})
	}
	return items
}

// CountLines returns the number of non-empty lines in raw.
func CountLines(raw string) int {
	return len(SplitUpsertLines(raw))
}
