package postgres

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// applyPagination applies limit, offset and created_at ordering.
func applyPagination(query *gorm.DB, limit, offset int, sortOrder string) *gorm.DB {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	order := "created_at DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "created_at ASC"
	}

	return query.Order(order).Limit(limit).Offset(offset)
}
