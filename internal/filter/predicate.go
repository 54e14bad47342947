package filter

import (
	"strconv"
	"strings"
	"time"
)

// clause is one SQL condition template paired with its bound values. The
// template uses {e} for the events table alias and one ? marker per bound
// value; markers are rewritten to $n placeholders at composition time, so
// clause text never contains user input.
type clause struct {
	expr string
	args []any
}

// Conjunction is an AND of independently-optional clauses. The zero value
// (and nil) matches everything.
type Conjunction struct {
	clauses []clause
}

// And returns a Conjunction combining the clauses of all non-nil predicates.
func And(preds ...*Conjunction) *Conjunction {
	out := &Conjunction{}
	for _, p := range preds {
		if p == nil {
			continue
		}
		out.clauses = append(out.clauses, p.clauses...)
	}
	return out
}

// FutureOnly restricts events to scheduled timestamps at or after now. It is
// the hard floor applied by the search and dashboard queries.
func FutureOnly(now time.Time) *Conjunction {
	return &Conjunction{clauses: []clause{{
		expr: "{e}.event_date >= ?",
		args: []any{now},
	}}}
}

// Clauses implements domain.Predicate. Placeholders are numbered from next.
func (c *Conjunction) Clauses(alias string, next int) ([]string, []any, int) {
	if c == nil || len(c.clauses) == 0 {
		return nil, nil, next
	}
	conds := make([]string, 0, len(c.clauses))
	var args []any
	for _, cl := range c.clauses {
		expr := strings.ReplaceAll(cl.expr, "{e}", alias)
		var b strings.Builder
		for _, r := range expr {
			if r == '?' {
				b.WriteByte('$')
				b.WriteString(strconv.Itoa(next))
				next++
				continue
			}
			b.WriteRune(r)
		}
		conds = append(conds, b.String())
		args = append(args, cl.args...)
	}
	return conds, args, next
}

// Empty reports whether the conjunction carries no clauses.
func (c *Conjunction) Empty() bool {
	return c == nil || len(c.clauses) == 0
}
