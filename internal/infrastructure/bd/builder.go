package db

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"fleet-rental/pkg/types"
)

// ApplyFilters adds equality filters (comma lists become IN) and an ILIKE
// search over searchCols. Keys missing from allowedMap are ignored.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string, searchCols []string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}

	if filter.Search != "" && len(searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make(sq.Or, 0, len(searchCols))
		for _, col := range searchCols {
			conditions = append(conditions, sq.Expr(fmt.Sprintf("%s ILIKE ?", col), pattern))
		}
		builder = builder.Where(conditions)
	}

	return builder
}

// ApplyListParams applies filters, sorting (falling back to defaultOrder) and pagination.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string, searchCols []string, defaultOrder ...string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap, searchCols)

	sorted := false
	for jsonField, dir := range filter.Sort {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(dir) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		sorted = true
	}
	if !sorted && len(defaultOrder) > 0 {
		builder = builder.OrderBy(defaultOrder...)
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}
