package service

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
	"github.com/talentbridge/backend/internal/repository"
	"github.com/talentbridge/backend/pkg/telemetry"
)

// UserService covers the admin user-management operations.
type UserService interface {
	List(ctx context.Context, query *dto.UsersQuery) (*dto.UsersResponse, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// List returns a page of public user projections, newest first.
func (s *userService) List(ctx context.Context, query *dto.UsersQuery) (*dto.UsersResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.users.list")
	defer span.End()

	query.Normalize()
	if query.Role != "" && !query.Role.IsValid() {
		query.Role = ""
	}

	users, total, err := s.users.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	span.SetAttributes(attribute.Int64("total", total))
	span.SetStatus(codes.Ok, "")
	return &dto.UsersResponse{
		Total: total,
		Users: public,
		Pagination: dto.Pagination{
			CurrentPage: query.Page,
			TotalPages:  totalPages,
			HasNextPage: query.Page < totalPages,
			HasPrevPage: query.Page > 1,
		},
	}, nil
}

// GetByID loads a single user or fails NotFound.
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.users.get")
	defer span.End()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Update mutates the editable profile fields only.
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.users.update")
	defer span.End()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if err := s.users.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Delete removes a user account entirely. Only user management may do this;
// the auth flows never delete rows.
func (s *userService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.users.delete")
	defer span.End()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return domain.NotFound("User not found")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
