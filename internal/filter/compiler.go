package filter

import (
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

// Date buckets accepted by the compiler. Anything else means "no date filter".
const (
	DateToday       = "today"
	DateTomorrow    = "tomorrow"
	DateThisWeek    = "this_week"
	DateThisWeekend = "this_weekend"
	DateNextWeek    = "next_week"
)

var (
	// Free-text search allows letters, digits, whitespace, and a restricted
	// punctuation set.
	searchRegexp = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?'"-]+$`)
	// Locations allow letters, whitespace, commas, and hyphens.
	locationRegexp = regexp.MustCompile(`^[a-zA-Z\s,-]+$`)
)

// Compiler translates untrusted search filters into a validated Conjunction
// with bound values. Free text passes through the sanitizer before
// validation; category values are sanitized and used only as exact-match
// membership tests.
type Compiler struct {
	sanitizer domain.Sanitizer
}

func NewCompiler(sanitizer domain.Sanitizer) *Compiler {
	return &Compiler{sanitizer: sanitizer}
}

// Compile validates f and returns the predicate with its bound parameters.
// Invalid fields are rejected with a field-specific message and contribute no
// clause and no bound values; an unrecognized date bucket is treated as no
// filter rather than an error. An empty filter compiles to a predicate that
// matches everything.
func (c *Compiler) Compile(f domain.SearchFilter, now time.Time) (*Conjunction, domain.ValidationErrors) {
	pred := &Conjunction{}
	errs := domain.ValidationErrors{}

	if q := c.sanitizer.Sanitize(f.Query); q != "" {
		if !searchRegexp.MatchString(q) {
			errs["search"] = "search query contains invalid characters; use only letters, numbers, and basic punctuation"
		} else {
			pred.clauses = append(pred.clauses, clause{
				expr: "(LOWER({e}.title) LIKE LOWER(?) OR LOWER({e}.description) LIKE LOWER(?))",
				args: []any{"%" + q + "%", "%" + q + "%"},
			})
		}
	}

	var cats []string
	for _, raw := range f.Categories {
		if cat := c.sanitizer.Sanitize(raw); cat != "" {
			cats = append(cats, cat)
		}
	}
	if len(cats) > 0 {
		markers := make([]string, len(cats))
		args := make([]any, len(cats))
		for i, cat := range cats {
			markers[i] = "?"
			args[i] = cat
		}
		pred.clauses = append(pred.clauses, clause{
			expr: "{e}.category IN (" + strings.Join(markers, ", ") + ")",
			args: args,
		})
	}

	if loc := c.sanitizer.Sanitize(f.Location); loc != "" {
		if !locationRegexp.MatchString(loc) {
			errs["location"] = "location contains invalid characters; use only letters, spaces, commas, and hyphens"
		} else {
			pred.clauses = append(pred.clauses, clause{
				expr: "LOWER({e}.location) LIKE LOWER(?)",
				args: []any{"%" + loc + "%"},
			})
		}
	}

	if cl, ok := dateClause(f.DateBucket, now); ok {
		pred.clauses = append(pred.clauses, cl)
	}

	// Price buckets are reserved: accepted but not enforced against data.

	if len(errs) > 0 {
		return pred, errs
	}
	return pred, nil
}

// dateClause computes the half-open time window for a date bucket relative to
// now. The weekend bucket matches Saturday or Sunday events that are not in
// the past.
func dateClause(bucket string, now time.Time) (clause, bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch bucket {
	case DateToday:
		return rangeClause(startOfDay, startOfDay.AddDate(0, 0, 1)), true
	case DateTomorrow:
		return rangeClause(startOfDay.AddDate(0, 0, 1), startOfDay.AddDate(0, 0, 2)), true
	case DateThisWeek:
		return rangeClause(now, now.AddDate(0, 0, 7)), true
	case DateNextWeek:
		return rangeClause(now.AddDate(0, 0, 7), now.AddDate(0, 0, 14)), true
	case DateThisWeekend:
		return clause{
			expr: "(EXTRACT(DOW FROM {e}.event_date) IN (0, 6) AND {e}.event_date >= ?)",
			args: []any{now},
		}, true
	}
	return clause{}, false
}

func rangeClause(from, to time.Time) clause {
	return clause{
		expr: "({e}.event_date >= ? AND {e}.event_date < ?)",
		args: []any{from, to},
	}
}
