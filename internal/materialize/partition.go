package materialize

import (
	"sheetboard/domain/briefing"
	"sheetboard/domain/sheet"
)

// Bucket is a named run of rows that becomes one group
type Bucket struct {
	Name string
	Rows []sheet.Row
}

// Partition splits rows into buckets according to the grouping strategy.
// It returns the buckets in first-seen order and the index of the grouping key
// header, or -1 when no header is consumed as the key.
func Partition(headers []string, rows []sheet.Row, grouping briefing.Grouping) ([]Bucket, int) {
	keyIdx := -1
	if grouping.Strategy == briefing.GroupByColumn {
		keyIdx = sheet.HeaderIndex(headers, grouping.ByColumn)
	}
	if len(rows) == 0 {
		return nil, keyIdx
	}

	if keyIdx < 0 {
		return []Bucket{{Name: fallbackName(grouping.DefaultGroup, briefing.DefaultGroupName), Rows: rows}}, keyIdx
	}

	emptyName := fallbackName(grouping.DefaultGroup, briefing.UncategorizedGroup)
	var buckets []Bucket
	index := make(map[string]int)
	for _, row := range rows {
		name := row.At(keyIdx).Trimmed()
		if name == "" {
			name = emptyName
		}
		pos, ok := index[name]
		if !ok {
			pos = len(buckets)
			index[name] = pos
			buckets = append(buckets, Bucket{Name: name})
		}
		buckets[pos].Rows = append(buckets[pos].Rows, row)
	}
	return buckets, keyIdx
}

func fallbackName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
