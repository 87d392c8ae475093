package employee

import (
	"log/slog"

	errors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
)

// Repository defines the data access methods for employees. Lookup methods
// return (nil, nil) when no row matches; reads eager-load the linked user.
type Repository interface {
	Create(e *employeeDatamodel.Employee) error
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByEmployeeID(code string, excludeID int64) (*employeeDatamodel.Employee, error)
	GetByUserID(userID int64) (*employeeDatamodel.Employee, error)
	Exists(id int64) (bool, error)
	List(filters Filters, params query.ListParams) ([]*employeeDatamodel.Employee, int64, error)
	Update(e *employeeDatamodel.Employee) error
	Delete(id int64) error
	Subordinates(managerID int64) ([]*employeeDatamodel.Employee, error)
}

// UserStore is the slice of the user repository the employee service needs to
// enforce the user_id reference.
type UserStore interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	users  UserStore
	logger *slog.Logger
}

func NewService(repo Repository, users UserStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// CreateEmployee persists a new employee after checking that the referenced
// user exists, is not already linked to an employee, and that the business key
// is unused. The unique indexes remain authoritative under concurrent writers.
func (s *Service) CreateEmployee(dto *CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	linkedUser, err := s.users.GetByID(dto.UserID)
	if err != nil {
		s.logger.Error("user lookup failed", "error", err, "user_id", dto.UserID)
		return nil, errors.NewInternalError("failed to create employee", err)
	}
	if linkedUser == nil {
		return nil, errors.ErrUserNotFound
	}

	existing, err := s.repo.GetByUserID(dto.UserID)
	if err != nil {
		s.logger.Error("user link check failed", "error", err, "user_id", dto.UserID)
		return nil, errors.NewInternalError("failed to create employee", err)
	}
	if existing != nil {
		return nil, errors.ErrUserHasEmployee
	}

	existing, err = s.repo.GetByEmployeeID(dto.EmployeeID, 0)
	if err != nil {
		s.logger.Error("employee ID check failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, errors.NewInternalError("failed to create employee", err)
	}
	if existing != nil {
		return nil, errors.ErrEmployeeIDExists
	}

	if err := s.validateManager(dto.ManagerID, 0); err != nil {
		return nil, err
	}

	record := ToDataModel(dto.ToDomain())
	if err := s.repo.Create(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, errors.NewInternalError("failed to create employee", err)
	}

	// Re-fetch so the response carries the linked user.
	created, err := s.repo.GetByID(record.ID)
	if err != nil || created == nil {
		s.logger.Error("failed to load created employee", "error", err, "id", record.ID)
		return nil, errors.NewInternalError("failed to load created employee", err)
	}

	s.logger.Info("employee created",
		"id", created.ID,
		"employee_id", created.EmployeeID,
		"user_id", created.UserID)

	return FromDataModel(created), nil
}

func (s *Service) GetEmployee(id int64) (*Employee, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "id", id)
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	if record == nil {
		return nil, errors.ErrEmployeeNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListEmployees(filters Filters, params query.ListParams) (*ListEmployeesResult, error) {
	params.Normalize()

	records, total, err := s.repo.List(filters, params)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, errors.NewInternalError("failed to list employees", err)
	}

	return &ListEmployeesResult{
		Items: FromDataModelSlice(records),
		Meta:  query.NewMeta(total, params.Page, params.Size),
	}, nil
}

// UpdateEmployee applies only the supplied fields. An employee_id change is
// re-checked for uniqueness against all other employees.
func (s *Service) UpdateEmployee(id int64, dto *UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee update validation failed", "error", err, "id", id)
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee for update", "error", err, "id", id)
		return nil, errors.NewInternalError("failed to update employee", err)
	}
	if record == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	if dto.EmployeeID != nil {
		existing, err := s.repo.GetByEmployeeID(*dto.EmployeeID, id)
		if err != nil {
			s.logger.Error("employee ID check failed", "error", err, "id", id)
			return nil, errors.NewInternalError("failed to update employee", err)
		}
		if existing != nil {
			return nil, errors.ErrEmployeeIDExists
		}
	}

	if dto.ManagerID != nil {
		if err := s.validateManager(dto.ManagerID, id); err != nil {
			return nil, err
		}
	}

	dto.ApplyTo(record)

	if err := s.repo.Update(record); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update employee", "error", err, "id", id)
		return nil, errors.NewInternalError("failed to update employee", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Error("failed to load updated employee", "error", err, "id", id)
		return nil, errors.NewInternalError("failed to load updated employee", err)
	}

	s.logger.Info("employee updated", "id", id)
	return FromDataModel(updated), nil
}

// DeleteEmployee removes an employee. Direct reports are detached first so no
// subordinate is left pointing at a missing manager.
func (s *Service) DeleteEmployee(id int64) error {
	exists, err := s.repo.Exists(id)
	if err != nil {
		s.logger.Error("failed to check employee", "error", err, "id", id)
		return errors.NewInternalError("failed to delete employee", err)
	}
	if !exists {
		return errors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "id", id)
		return errors.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "id", id)
	return nil
}

// Subordinates lists the direct reports of a manager. A manager with no
// reports yields an empty list, not an error.
func (s *Service) Subordinates(managerID int64) ([]*Employee, error) {
	exists, err := s.repo.Exists(managerID)
	if err != nil {
		s.logger.Error("failed to check manager", "error", err, "id", managerID)
		return nil, errors.NewInternalError("failed to list subordinates", err)
	}
	if !exists {
		return nil, errors.ErrEmployeeNotFound
	}

	records, err := s.repo.Subordinates(managerID)
	if err != nil {
		s.logger.Error("failed to list subordinates", "error", err, "id", managerID)
		return nil, errors.NewInternalError("failed to list subordinates", err)
	}

	return FromDataModelSlice(records), nil
}

// validateManager rejects a manager_id that does not reference an existing
// employee, or that points back at the employee itself. Deeper cycles through
// the reporting chain are not detected.
func (s *Service) validateManager(managerID *int64, selfID int64) *errors.AppError {
	if managerID == nil {
		return nil
	}
	if selfID != 0 && *managerID == selfID {
		return errors.NewValidationFieldError("manager_id", "employee cannot manage itself", errors.ErrCodeInvalidManager)
	}
	exists, err := s.repo.Exists(*managerID)
	if err != nil {
		s.logger.Error("manager lookup failed", "error", err, "manager_id", *managerID)
		return errors.NewInternalError("failed to validate manager", err)
	}
	if !exists {
		return errors.NewValidationFieldError("manager_id", "manager does not exist", errors.ErrCodeInvalidManager)
	}
	return nil
}
