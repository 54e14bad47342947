package services

import (
	"context"
	"time"

	"campusevents/internal/domain"
)

// mockEventRepo implements domain.EventRepository with overridable funcs.
type mockEventRepo struct {
	createFn        func(ctx context.Context, e *domain.Event) error
	getByIDFn       func(ctx context.Context, id int64) (*domain.Event, error)
	capacityStateFn func(ctx context.Context, eventID int64) (*domain.CapacityState, error)
	listAnnotatedFn func(ctx context.Context, pred domain.Predicate, viewerID int64, order domain.SortOrder, limit int) ([]*domain.AnnotatedEvent, error)
	listByCreatorFn func(ctx context.Context, creatorID int64) ([]*domain.AnnotatedEvent, error)
	categoriesFn    func(ctx context.Context) ([]string, error)
	registerFn      func(ctx context.Context, eventID, userID int64) (domain.RegisterOutcome, error)
	unregisterFn    func(ctx context.Context, eventID, userID int64) (domain.UnregisterOutcome, error)
	deleteFn        func(ctx context.Context, eventID, requesterID int64) (domain.DeleteOutcome, error)
}

func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	return m.createFn(ctx, e)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventRepo) GetCapacityState(ctx context.Context, eventID int64) (*domain.CapacityState, error) {
	return m.capacityStateFn(ctx, eventID)
}

func (m *mockEventRepo) ListAnnotated(ctx context.Context, pred domain.Predicate, viewerID int64, order domain.SortOrder, limit int) ([]*domain.AnnotatedEvent, error) {
	return m.listAnnotatedFn(ctx, pred, viewerID, order, limit)
}

func (m *mockEventRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*domain.AnnotatedEvent, error) {
	return m.listByCreatorFn(ctx, creatorID)
}

func (m *mockEventRepo) ListCategories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}

func (m *mockEventRepo) Register(ctx context.Context, eventID, userID int64) (domain.RegisterOutcome, error) {
	return m.registerFn(ctx, eventID, userID)
}

func (m *mockEventRepo) Unregister(ctx context.Context, eventID, userID int64) (domain.UnregisterOutcome, error) {
	return m.unregisterFn(ctx, eventID, userID)
}

func (m *mockEventRepo) Delete(ctx context.Context, eventID, requesterID int64) (domain.DeleteOutcome, error) {
	return m.deleteFn(ctx, eventID, requesterID)
}

// mockUserRepo implements domain.UserRepository.
type mockUserRepo struct {
	createFn          func(ctx context.Context, u *domain.User) error
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	updateLastLoginFn func(ctx context.Context, id int64, at time.Time) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if m.updateLastLoginFn == nil {
		return nil
	}
	return m.updateLastLoginFn(ctx, id, at)
}

// mockEmailService records sent emails.
type mockEmailService struct {
	welcomes      []*domain.WelcomeEmailData
	confirmations []*domain.RegistrationConfirmationData
	err           error
}

func (m *mockEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, data)
	return nil
}

func (m *mockEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}

// mockHasher implements domain.PasswordHasher deterministically.
type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockHasher) Hash(salt, password string) (string, error) {
	return "hash(" + salt + "+" + password + ")", nil
}

func (m *mockHasher) Compare(hash, salt, password string) error { return m.compareErr }

// mockIssuer implements domain.TokenIssuer.
type mockIssuer struct {
	token string
	err   error
}

func (m *mockIssuer) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	return m.token, m.err
}
