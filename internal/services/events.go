package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

const minTitleLength = 3

var (
	dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegexp = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. emailService may be nil; then no
// confirmation emails are sent.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, draft domain.EventDraft, creatorID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventDate, verrs := validateDraft(draft)
	if verrs != nil {
		return 0, verrs
	}

	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	now := time.Now()
	event := &domain.Event{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		EventDate:   eventDate,
		Location:    strings.TrimSpace(draft.Location),
		Capacity:    draft.Capacity,
		Category:    category,
		Status:      domain.DefaultStatus,
		CreatedBy:   &creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return event.ID, nil
}

// validateDraft applies the create-event field rules and combines the
// calendar date and 24-hour time into the event's wall-clock timestamp.
func validateDraft(draft domain.EventDraft) (time.Time, domain.ValidationErrors) {
	errs := domain.ValidationErrors{}
	if len(strings.TrimSpace(draft.Title)) < minTitleLength {
		errs["title"] = fmt.Sprintf("title must be at least %d characters", minTitleLength)
	}
	if strings.TrimSpace(draft.Description) == "" {
		errs["description"] = "description is required"
	}
	if strings.TrimSpace(draft.Location) == "" {
		errs["location"] = "location is required"
	}
	if !dateRegexp.MatchString(draft.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if !timeRegexp.MatchString(draft.Time) {
		errs["time"] = "time must be HH:MM in 24-hour format"
	}
	if draft.Capacity != nil && *draft.Capacity < 0 {
		errs["capacity"] = "capacity must be zero or greater"
	}

	var eventDate time.Time
	if errs["date"] == "" && errs["time"] == "" {
		var err error
		eventDate, err = time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.Time, time.Local)
		if err != nil {
			errs["date"] = "date and time do not form a valid timestamp"
		}
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return eventDate, nil
}

func (s *eventService) Register(ctx context.Context, eventID, viewerID int64) (domain.RegisterOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	outcome, err := s.eventRepo.Register(ctx, eventID, viewerID)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if outcome == domain.RegisterCreated {
		s.sendConfirmation(ctx, eventID, viewerID)
	}
	return outcome, nil
}

// sendConfirmation emails the newly registered user. The registration stands
// even when the email fails; failures are logged only.
func (s *eventService) sendConfirmation(ctx context.Context, eventID, userID int64) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "event_id", eventID, "user_id", userID, "err", err)
		return
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "event_id", eventID, "user_id", userID, "err", err)
		return
	}
	data := &domain.RegistrationConfirmationData{
		Email:      user.Email,
		FirstName:  user.FirstName,
		EventTitle: event.Title,
		EventDate:  event.EventDate.Format("Jan 2, 2006 at 3:04 PM"),
		Location:   event.Location,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "event_id", eventID, "user_id", userID, "err", err)
	}
}

func (s *eventService) Unregister(ctx context.Context, eventID, viewerID int64) (domain.UnregisterOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	outcome, err := s.eventRepo.Unregister(ctx, eventID, viewerID)
	if err != nil {
		return "", fmt.Errorf("unregister: %w", err)
	}
	return outcome, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, viewerID int64) (domain.DeleteOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	outcome, err := s.eventRepo.Delete(ctx, eventID, viewerID)
	if err != nil {
		return "", fmt.Errorf("delete event: %w", err)
	}
	return outcome, nil
}

func (s *eventService) CapacityState(ctx context.Context, eventID int64) (*domain.CapacityState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	state, err := s.eventRepo.GetCapacityState(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get capacity state: %w", err)
	}
	return state, nil
}
