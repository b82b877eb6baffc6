package repositories

import (
	"fmt"
	"strings"

	"github.com/coachdesk/api/internal/access"
)

// queryFilter accumulates WHERE clauses with positional arguments so list
// queries and their COUNT twins share one argument list.
type queryFilter struct {
	clauses []string
	args    []any
}

// add appends a clause; format must contain one $%d verb for the argument
// position.
func (q *queryFilter) add(format string, value any) {
	q.args = append(q.args, value)
	q.clauses = append(q.clauses, fmt.Sprintf(format, len(q.args)))
}

func (q *queryFilter) where() string {
	if len(q.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.clauses, " AND ")
}

// applyListFilter translates a resolved scope filter into SQL predicates. The
// resolver guarantees at most one of created_by / created_by-set / compound
// ownership is present.
func applyListFilter(q *queryFilter, filter *access.ListFilter) {
	if filter == nil {
		return
	}

	if filter.CreatedBy != "" {
		q.add("created_by = $%d", filter.CreatedBy)
	}
	if len(filter.CreatedByIn) > 0 {
		q.add("created_by = ANY($%d)", filter.CreatedByIn)
	}
	if filter.SubjectID != "" {
		q.add("user_id = $%d", filter.SubjectID)
	}
	if filter.Visibility != "" {
		q.add("visibility = $%d", string(filter.Visibility))
	}
	if filter.AccessibleFor != nil {
		q.args = append(q.args, filter.AccessibleFor.OwnerID)
		ownerPos := len(q.args)
		q.args = append(q.args, filter.AccessibleFor.CreatorIDs)
		creatorsPos := len(q.args)
		q.clauses = append(q.clauses,
			fmt.Sprintf("(owner_id = $%d OR created_by = ANY($%d))", ownerPos, creatorsPos))
	}
}

// pageOffset converts 1-based page numbers to a SQL offset.
func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
