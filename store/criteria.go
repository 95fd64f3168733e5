package store

import (
	"github.com/uptrace/bun"
)

// Where matches rows whose column equals value.
func Where(column string, value any) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident(column), value)
	}
}

// WhereFold matches a text column case-insensitively.
func WhereFold(column string, value string) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(?) = LOWER(?)", bun.Ident(column), value)
	}
}

// WhereContainsFold matches a text column containing value, ignoring case.
func WhereContainsFold(column string, value string) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(?) LIKE LOWER(?)", bun.Ident(column), "%"+value+"%")
	}
}

// OrderBy sorts by column, descending when desc is set.
func OrderBy(column string, desc bool) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if desc {
			return q.OrderExpr("? DESC", bun.Ident(column))
		}
		return q.OrderExpr("? ASC", bun.Ident(column))
	}
}

// All combines several criteria into one.
func All(criteria ...SelectCriteria) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, c := range criteria {
			if c != nil {
				q = c(q)
			}
		}
		return q
	}
}
