package repository

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hotelops/housekeeping-inventory/internal/user/domain"
)

var errUserNotFound = errors.New("user not found")

type recordingUserRepo struct {
	users   map[uint]*domain.User
	created []*domain.User
}

func (r *recordingUserRepo) Create(user *domain.User) error {
	user.ID = uint(len(r.created) + 1)
	r.created = append(r.created, user)
	return nil
}

func (r *recordingUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	return user, nil
}

func (r *recordingUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errUserNotFound
}

func (r *recordingUserRepo) FindByEmail(email string) (*domain.User, error) {
	return nil, errUserNotFound
}
func (r *recordingUserRepo) FindAll(limit, offset int) ([]domain.User, error) { return nil, nil }
func (r *recordingUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	return nil, nil
}
func (r *recordingUserRepo) Update(user *domain.User) error        { return nil }
func (r *recordingUserRepo) Delete(id uint) error                  { return nil }
func (r *recordingUserRepo) Count() (int64, error)                 { return 0, nil }
func (r *recordingUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

// sharedProvider is installed once: the package-level tracer in
// tracing.go is a global delegating tracer that binds to the first
// provider ever set, so per-test SetTracerProvider calls would never
// re-route spans to a fresh recorder. Each test instead registers its
// own recorder on the shared provider, capturing only its own spans.
var sharedProvider *sdktrace.TracerProvider

func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	if sharedProvider == nil {
		sharedProvider = sdktrace.NewTracerProvider()
		otel.SetTracerProvider(sharedProvider)
	}
	recorder := tracetest.NewSpanRecorder()
	sharedProvider.RegisterSpanProcessor(recorder)
	return recorder
}

func TestUserRepositoryWithTracing_CreateDelegates(t *testing.T) {
	recorder := newSpanRecorder(t)

	inner := &recordingUserRepo{users: map[uint]*domain.User{}}
	repo := NewUserRepositoryWithTracing(inner)

	var _ domain.UserRepository = repo

	user := &domain.User{Username: "gkaraca", Role: domain.RoleStaff}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(inner.created) != 1 {
		t.Fatalf("inner Create called %d times, want 1", len(inner.created))
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "repository.Create" {
		t.Errorf("span name = %q, want repository.Create", got)
	}
}

func TestUserRepositoryWithTracing_FindByUsernameRecordsError(t *testing.T) {
	recorder := newSpanRecorder(t)

	repo := NewUserRepositoryWithTracing(&recordingUserRepo{users: map[uint]*domain.User{}})

	if _, err := repo.FindByUsername("ghost"); !errors.Is(err, errUserNotFound) {
		t.Fatalf("FindByUsername error = %v, want errUserNotFound", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("span should record the repository error")
	}
}
