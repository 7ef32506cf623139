package persistence

import (
	"errors"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// BlindIndexer derives the deterministic lookup hash stored next to an
// encrypted column.
type BlindIndexer interface {
	BlindIndex(value string) string
}

// translateError maps GORM sentinel errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInUse
	}
	return err
}

// applySearch adds a case-insensitive substring match over columns.
// LOWER() LIKE is used instead of ILIKE so the query also runs on SQLite.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// applyPage orders by a whitelisted column and applies offset/limit
func applyPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.
		Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// countAndFind counts the filtered rows, then loads one page into dest.
// findScopes (preloads, mostly) apply to the page query only.
func countAndFind(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string, dest any, findScopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := applyPage(query, filter, allowed, defaultField).Scopes(findScopes...).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// exists reports whether query matches at least one row
func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
