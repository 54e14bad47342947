package domain

import "context"

// SearchFilter is the untrusted, ephemeral filter input for a search. It is
// never persisted; callers that remember a "last filter" own that state and
// pass it back in explicitly.
type SearchFilter struct {
	Query       string   `json:"q"`
	Categories  []string `json:"categories"`
	Location    string   `json:"location"`
	DateBucket  string   `json:"date_filter"`
	PriceBucket string   `json:"price"`
}

// IsZero reports whether no filter field is set.
func (f SearchFilter) IsZero() bool {
	return f.Query == "" && len(f.Categories) == 0 && f.Location == "" &&
		f.DateBucket == "" && f.PriceBucket == ""
}

// SearchResult is the annotated, ordered result of a search.
type SearchResult struct {
	Events     []*EventView `json:"events"`
	TotalCount int          `json:"total_count"`
}

// DashboardView bundles the two dashboard projections for one viewer.
// UpcomingCount counts the returned discoverable events whose timestamp is
// strictly after the instant the dashboard was built.
type DashboardView struct {
	OwnEvents     []*EventView `json:"own_events"`
	AllEvents     []*EventView `json:"all_events"`
	UpcomingCount int          `json:"upcoming_count"`
}

// DiscoveryService composes the filter compiler with the event repository to
// produce the search and dashboard views. Search accepts AnonymousViewer.
type DiscoveryService interface {
	Search(ctx context.Context, f SearchFilter, viewerID int64) (*SearchResult, error)
	Dashboard(ctx context.Context, viewerID int64) (*DashboardView, error)
	// Categories lists the distinct event categories in use, for building
	// filter choices.
	Categories(ctx context.Context) ([]string, error)
}
