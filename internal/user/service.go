package user

import (
	"log/slog"

	errors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
)

// Repository defines the data access methods for users. Lookup methods return
// (nil, nil) when no row matches.
type Repository interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	FindByUsernameOrEmail(username, email string, excludeID int64) (*userDatamodel.User, error)
	List(filters Filters, params query.ListParams) ([]*userDatamodel.User, int64, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
	HasEmployee(userID int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser persists a new user. The uniqueness pre-check gives a friendly
// error; the unique indexes on username and email stay authoritative under
// concurrent writers.
func (s *Service) CreateUser(dto *CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user validation failed", "error", err, "username", dto.Username)
		return nil, err
	}

	existing, err := s.repo.FindByUsernameOrEmail(dto.Username, dto.Email, 0)
	if err != nil {
		s.logger.Error("uniqueness check failed", "error", err, "username", dto.Username)
		return nil, errors.NewInternalError("failed to create user", err)
	}
	if existing != nil {
		return nil, errors.ErrUserExists
	}

	record := ToDataModel(dto.ToDomain())
	if err := s.repo.Create(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", record.ID, "username", record.Username)
	return FromDataModel(record), nil
}

func (s *Service) GetUser(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if record == nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListUsers(filters Filters, params query.ListParams) (*ListUsersResult, error) {
	params.Normalize()

	records, total, err := s.repo.List(filters, params)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	return &ListUsersResult{
		Items: FromDataModelSlice(records),
		Meta:  query.NewMeta(total, params.Page, params.Size),
	}, nil
}

// UpdateUser applies only the supplied fields. Username and email changes are
// re-checked for uniqueness against all other users.
func (s *Service) UpdateUser(id int64, dto *UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user update validation failed", "error", err, "user_id", id)
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user for update", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to update user", err)
	}
	if record == nil {
		return nil, errors.ErrUserNotFound
	}

	if dto.Username != nil || dto.Email != nil {
		username := record.Username
		if dto.Username != nil {
			username = *dto.Username
		}
		email := record.Email
		if dto.Email != nil {
			email = *dto.Email
		}
		existing, err := s.repo.FindByUsernameOrEmail(username, email, id)
		if err != nil {
			s.logger.Error("uniqueness check failed", "error", err, "user_id", id)
			return nil, errors.NewInternalError("failed to update user", err)
		}
		if existing != nil {
			return nil, errors.ErrUserExists
		}
	}

	dto.ApplyTo(record)

	if err := s.repo.Update(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return FromDataModel(record), nil
}

// DeleteUser removes a user. A user still linked to an employee record is
// rejected so the employees table never points at a missing row.
func (s *Service) DeleteUser(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user for delete", "error", err, "user_id", id)
		return errors.NewInternalError("failed to delete user", err)
	}
	if record == nil {
		return errors.ErrUserNotFound
	}

	hasEmployee, err := s.repo.HasEmployee(id)
	if err != nil {
		s.logger.Error("employee link check failed", "error", err, "user_id", id)
		return errors.NewInternalError("failed to delete user", err)
	}
	if hasEmployee {
		return errors.ErrUserLinkedEmployee
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return errors.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
