package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusevents/internal/adapters/sanitize"
	"campusevents/internal/domain"
)

func compile(t *testing.T, f domain.SearchFilter, now time.Time) (*Conjunction, domain.ValidationErrors) {
	t.Helper()
	return NewCompiler(sanitize.New()).Compile(f, now)
}

func TestCompile_EmptyFilterMatchesEverything(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	pred, errs := compile(t, domain.SearchFilter{}, now)
	require.Nil(t, errs)
	require.True(t, pred.Empty())

	conds, args, next := pred.Clauses("e", 2)
	require.Empty(t, conds)
	require.Empty(t, args)
	require.Equal(t, 2, next)
}

func TestCompile_SearchQuery(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid text produces a bound LIKE clause", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{Query: "  robotics club  "}, now)
		require.Nil(t, errs)

		conds, args, next := pred.Clauses("e", 2)
		require.Len(t, conds, 1)
		require.Equal(t, "(LOWER(e.title) LIKE LOWER($2) OR LOWER(e.description) LIKE LOWER($3))", conds[0])
		require.Equal(t, []any{"%robotics club%", "%robotics club%"}, args)
		require.Equal(t, 4, next)
	})

	t.Run("allowed punctuation survives sanitization", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{Query: `what's "new"?`}, now)
		require.Nil(t, errs)
		require.False(t, pred.Empty())
	})

	t.Run("markup is rejected with no bound values", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{Query: "<script>alert(1)</script>"}, now)
		require.NotNil(t, errs)
		require.Contains(t, errs, "search")

		_, args, _ := pred.Clauses("e", 2)
		require.Empty(t, args)
	})
}

func TestCompile_Categories(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	pred, errs := compile(t, domain.SearchFilter{Categories: []string{"career", " sports ", ""}}, now)
	require.Nil(t, errs)

	conds, args, next := pred.Clauses("e", 2)
	require.Len(t, conds, 1)
	require.Equal(t, "e.category IN ($2, $3)", conds[0])
	require.Equal(t, []any{"career", "sports"}, args)
	require.Equal(t, 4, next)
}

func TestCompile_Location(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid location", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{Location: "North Campus, Building A-Wing"}, now)
		require.Nil(t, errs)

		conds, args, _ := pred.Clauses("e", 2)
		require.Equal(t, []string{"LOWER(e.location) LIKE LOWER($2)"}, conds)
		require.Equal(t, []any{"%North Campus, Building A-Wing%"}, args)
	})

	t.Run("digits are rejected", func(t *testing.T) {
		_, errs := compile(t, domain.SearchFilter{Location: "Hall 42"}, now)
		require.NotNil(t, errs)
		require.Contains(t, errs, "location")
	})
}

func TestCompile_DateBuckets(t *testing.T) {
	// A Tuesday at noon.
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	startOfDay := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		bucket   string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{DateToday, startOfDay, startOfDay.AddDate(0, 0, 1)},
		{DateTomorrow, startOfDay.AddDate(0, 0, 1), startOfDay.AddDate(0, 0, 2)},
		{DateThisWeek, now, now.AddDate(0, 0, 7)},
		{DateNextWeek, now.AddDate(0, 0, 7), now.AddDate(0, 0, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			pred, errs := compile(t, domain.SearchFilter{DateBucket: tt.bucket}, now)
			require.Nil(t, errs)

			conds, args, _ := pred.Clauses("e", 2)
			require.Equal(t, []string{"(e.event_date >= $2 AND e.event_date < $3)"}, conds)
			require.Equal(t, []any{tt.wantFrom, tt.wantTo}, args)
		})
	}

	t.Run("weekend uses day-of-week with a past floor", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{DateBucket: DateThisWeekend}, now)
		require.Nil(t, errs)

		conds, args, _ := pred.Clauses("e", 2)
		require.Equal(t, []string{"(EXTRACT(DOW FROM e.event_date) IN (0, 6) AND e.event_date >= $2)"}, conds)
		require.Equal(t, []any{now}, args)
	})

	t.Run("unknown bucket means no date clause", func(t *testing.T) {
		pred, errs := compile(t, domain.SearchFilter{DateBucket: "someday"}, now)
		require.Nil(t, errs)
		require.True(t, pred.Empty())
	})
}

func TestCompile_CombinedFilters(t *testing.T) {
	// Career events this week: an event tomorrow matches the window, one in
	// ten days does not.
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	pred, errs := compile(t, domain.SearchFilter{
		Categories: []string{"career"},
		DateBucket: DateThisWeek,
	}, now)
	require.Nil(t, errs)

	conds, args, next := pred.Clauses("e", 2)
	require.Equal(t, []string{
		"e.category IN ($2)",
		"(e.event_date >= $3 AND e.event_date < $4)",
	}, conds)
	require.Equal(t, []any{"career", now, now.AddDate(0, 0, 7)}, args)
	require.Equal(t, 5, next)

	from := args[1].(time.Time)
	to := args[2].(time.Time)
	tomorrow := now.AddDate(0, 0, 1)
	tenDaysOut := now.AddDate(0, 0, 10)
	require.True(t, !tomorrow.Before(from) && tomorrow.Before(to))
	require.False(t, tenDaysOut.Before(to))
}

func TestCompile_InvalidFieldContributesNoClause(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// An invalid query must not suppress the valid category clause, and the
	// overall result still reports the field error.
	pred, errs := compile(t, domain.SearchFilter{
		Query:      "<img src=x>",
		Categories: []string{"sports"},
	}, now)
	require.NotNil(t, errs)
	require.Contains(t, errs, "search")

	conds, args, _ := pred.Clauses("e", 2)
	require.Equal(t, []string{"e.category IN ($2)"}, conds)
	require.Equal(t, []any{"sports"}, args)
}

func TestConjunction_And(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	combined := And(nil, FutureOnly(now), &Conjunction{})
	conds, args, next := combined.Clauses("e", 5)
	require.Equal(t, []string{"e.event_date >= $5"}, conds)
	require.Equal(t, []any{now}, args)
	require.Equal(t, 6, next)
}
