package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/shared"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist, falling
// back to defaultField. Sorting is never done on raw user input.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// Sort field whitelists per table
var (
	commonSortFields = map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}

	productSortFields = map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"sku":        true,
		"name":       true,
		"status":     true,
	}

	partnerSortFields = map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"code":       true,
		"name":       true,
		"status":     true,
	}

	userSortFields = map[string]bool{
		"id":            true,
		"created_at":    true,
		"updated_at":    true,
		"username":      true,
		"role":          true,
		"status":        true,
		"last_login_at": true,
	}

	documentSortFields = map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"number":     true,
		"status":     true,
	}

	movementSortFields = map[string]bool{
		"id":          true,
		"created_at":  true,
		"occurred_at": true,
		"product_id":  true,
		"source_type": true,
	}
)

// applyFilter applies whitelisted ordering and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultOrderBy string) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, allowedFields, defaultOrderBy)
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

// translateNotFound maps GORM's record-not-found to the domain error
func translateNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
