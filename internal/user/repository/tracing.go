package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hotelops/housekeeping-inventory/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// UserRepositoryWithTracing decorates a UserRepository with spans on the
// auth-critical operations. All other methods pass through untouched.
type UserRepositoryWithTracing struct {
	domain.UserRepository
}

// NewUserRepositoryWithTracing wraps a user repository with tracing
func NewUserRepositoryWithTracing(inner domain.UserRepository) *UserRepositoryWithTracing {
	return &UserRepositoryWithTracing{UserRepository: inner}
}

// Create creates a user inside a repository span
func (r *UserRepositoryWithTracing) Create(user *domain.User) error {
	_, span := tracer.Start(context.Background(), "repository.Create",
		trace.WithAttributes(
			attribute.String("user.username", user.Username),
		),
	)
	defer span.End()

	if err := r.UserRepository.Create(user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

// FindByID finds a user inside a repository span
func (r *UserRepositoryWithTracing) FindByID(id uint) (*domain.User, error) {
	_, span := tracer.Start(context.Background(), "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("user.id", int(id)),
		),
	)
	defer span.End()

	user, err := r.UserRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user.role", user.Role))
	return user, nil
}

// FindByUsername finds a user by username inside a repository span
func (r *UserRepositoryWithTracing) FindByUsername(username string) (*domain.User, error) {
	_, span := tracer.Start(context.Background(), "repository.FindByUsername",
		trace.WithAttributes(
			attribute.String("user.username", username),
		),
	)
	defer span.End()

	user, err := r.UserRepository.FindByUsername(username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return user, nil
}
