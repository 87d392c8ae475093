package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100

	DefaultOrderColumn = "created_at"
)

// ListParams carries the pagination, search and ordering knobs shared by every
// listing endpoint.
type ListParams struct {
	Page      int
	Size      int
	Search    string
	OrderBy   string
	OrderDesc bool
}

// Normalize clamps page and size into their valid ranges and fills defaults.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	if p.OrderBy == "" {
		p.OrderBy = DefaultOrderColumn
	}
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Meta is the pagination envelope returned alongside every page of items.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// NewMeta computes the page count as ceil(total/size), 0 for an empty result.
func NewMeta(total int64, page, size int) Meta {
	pages := 0
	if total > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Meta{Total: total, Page: page, Size: size, Pages: pages}
}

// Paginate applies offset/limit for the given normalized params.
func Paginate(p ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}

// SearchAny matches term case-insensitively as a substring in any of the given
// columns. A blank term leaves the query untouched.
func SearchAny(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// ContainsFold filters a single column on a case-insensitive substring match.
func ContainsFold(column, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(term) == "" {
			return db
		}
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(term)+"%")
	}
}

// Order sorts by the column the requested field maps to, falling back to
// created_at for unknown fields. The allowed map keys are the field names the
// API accepts; values are the underlying columns, so a field like salary can
// sort on salary_cents. A secondary sort on id keeps page boundaries stable
// when the order column has ties.
func Order(orderBy string, desc bool, allowed map[string]string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[orderBy]
		if !ok {
			column = DefaultOrderColumn
		}
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		return db.
			Order(fmt.Sprintf("%s %s", column, direction)).
			Order("id ASC")
	}
}
