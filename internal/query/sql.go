package query

import (
	"fmt"
	"strings"
)

// SQLBuilder accumulates WHERE conditions with positional bind arguments.
// Conditions are always parameterized, never concatenated into the query
// text.
type SQLBuilder struct {
	conds []string
	args  []any
}

// Where appends a condition. The condition string uses %d-style
// placeholders that are rewritten to the next positional parameters, e.g.
// Where("username ILIKE $%d", pattern).
func (b *SQLBuilder) Where(cond string, args ...any) {
	placeholders := make([]any, len(args))
	for i := range args {
		b.args = append(b.args, args[i])
		placeholders[i] = len(b.args)
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
}

// Clause returns the assembled WHERE clause (empty when no conditions)
// and the bound arguments in order.
func (b *SQLBuilder) Clause() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(b.conds, " AND "), b.args
}

// NextArg registers an extra bound argument outside the WHERE clause
// (LIMIT/OFFSET) and returns its positional placeholder.
func (b *SQLBuilder) NextArg(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

// Args returns all bound arguments accumulated so far.
func (b *SQLBuilder) Args() []any {
	return b.args
}

type UserFilter struct {
	Search string
}

// Apply adds the user list predicates: a case-insensitive substring match
// against username or email. An empty filter adds nothing.
func (f UserFilter) Apply(b *SQLBuilder) {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.Where("(username ILIKE $%d OR email ILIKE $%d)", pattern, pattern)
	}
}
