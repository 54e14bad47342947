package services

import (
	"context"
	"fmt"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/filter"
)

// dashboardBrowseLimit caps the "all discoverable events" dashboard
// projection. Search results are not paginated: the dataset is campus-scale.
const dashboardBrowseLimit = 50

type discoveryService struct {
	eventRepo      domain.EventRepository
	compiler       *filter.Compiler
	now            func() time.Time
	contextTimeout time.Duration
}

// NewDiscoveryService creates a DiscoveryService over the given repository
// and filter compiler. now is the clock used for date-bucket windows and the
// future floor; pass time.Now outside of tests.
func NewDiscoveryService(eventRepo domain.EventRepository, compiler *filter.Compiler, now func() time.Time, timeout time.Duration) domain.DiscoveryService {
	if now == nil {
		now = time.Now
	}
	return &discoveryService{
		eventRepo:      eventRepo,
		compiler:       compiler,
		now:            now,
		contextTimeout: timeout,
	}
}

func (s *discoveryService) Search(ctx context.Context, f domain.SearchFilter, viewerID int64) (*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	pred, verrs := s.compiler.Compile(f, now)
	if verrs != nil {
		return nil, verrs
	}

	// Search always restricts to future events on top of the compiled filter.
	rows, err := s.eventRepo.ListAnnotated(ctx, filter.And(pred, filter.FutureOnly(now)), viewerID, domain.SortAscending, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	views := AnnotateForViewer(rows, viewerID)
	return &domain.SearchResult{Events: views, TotalCount: len(views)}, nil
}

func (s *discoveryService) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.eventRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *discoveryService) Dashboard(ctx context.Context, viewerID int64) (*domain.DashboardView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	ownRows, err := s.eventRepo.ListByCreator(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list own events: %w", err)
	}
	allRows, err := s.eventRepo.ListAnnotated(ctx, filter.FutureOnly(now), viewerID, domain.SortAscending, dashboardBrowseLimit)
	if err != nil {
		return nil, fmt.Errorf("list all events: %w", err)
	}

	all := AnnotateForViewer(allRows, viewerID)
	upcoming := 0
	for _, v := range all {
		if v.EventDate.After(now) {
			upcoming++
		}
	}
	return &domain.DashboardView{
		OwnEvents:     AnnotateForViewer(ownRows, viewerID),
		AllEvents:     all,
		UpcomingCount: upcoming,
	}, nil
}
