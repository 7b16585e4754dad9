package services

import "strings"

// orderClause translates an API sort key into a SQL ORDER BY fragment.
// Keys follow the convention "field" for ascending and "-field" for
// descending. Unknown keys fall back to the default order so that stale
// bookmarked URLs keep working instead of turning into errors.
func orderClause(sort string, allowed map[string]string, defaultOrder string) string {
	if sort == "" {
		return defaultOrder
	}
	desc := strings.HasPrefix(sort, "-")
	key := strings.TrimPrefix(sort, "-")
	column, ok := allowed[key]
	if !ok {
		return defaultOrder
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// searchPattern builds a lowercase LIKE pattern for case-insensitive
// substring matching across database drivers.
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
