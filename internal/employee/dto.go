package employee

import (
	"time"

	errors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	"github.com/wrkforce/employee-management/internal/core/common/validation"
	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
)

// CreateEmployeeDTO is the request payload for creating an employee. Status
// defaults to "active"; salary is in minor currency units.
type CreateEmployeeDTO struct {
	EmployeeID  string    `json:"employee_id"`
	UserID      int64     `json:"user_id"`
	Department  string    `json:"department"`
	Position    string    `json:"position"`
	SalaryCents *int64    `json:"salary"`
	HireDate    time.Time `json:"hire_date"`
	Status      string    `json:"status"`
	ManagerID   *int64    `json:"manager_id"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
}

func (dto *CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required().MinLength(1).MaxLength(20)
	v.Field("user_id", dto.UserID).Required()
	v.Field("department", dto.Department).Required().MinLength(1).MaxLength(100)
	v.Field("position", dto.Position).Required().MinLength(1).MaxLength(100)
	v.Field("salary", dto.SalaryCents).NonNegative(errors.ErrCodeInvalidSalary)
	v.Field("hire_date", dto.HireDate).Required()
	v.Field("status", dto.Status).OneOf(employeeDatamodel.Statuses(), errors.ErrCodeInvalidStatus)
	if dto.Phone != nil {
		v.Field("phone", *dto.Phone).MaxLength(20)
	}
	return v.Validate()
}

func (dto *CreateEmployeeDTO) ToDomain() *Employee {
	status := dto.Status
	if status == "" {
		status = employeeDatamodel.StatusActive
	}
	return &Employee{
		EmployeeID:  dto.EmployeeID,
		UserID:      dto.UserID,
		Department:  dto.Department,
		Position:    dto.Position,
		SalaryCents: dto.SalaryCents,
		HireDate:    dto.HireDate,
		Status:      status,
		ManagerID:   dto.ManagerID,
		Phone:       dto.Phone,
		Address:     dto.Address,
	}
}

// UpdateEmployeeDTO is a partial update: nil fields are left untouched. An
// explicit JSON null is indistinguishable from an absent field, so the
// nullable columns (manager, salary, phone, address) cannot be cleared here;
// a manager link only goes away when the manager is deleted.
type UpdateEmployeeDTO struct {
	EmployeeID  *string    `json:"employee_id"`
	Department  *string    `json:"department"`
	Position    *string    `json:"position"`
	SalaryCents *int64     `json:"salary"`
	HireDate    *time.Time `json:"hire_date"`
	Status      *string    `json:"status"`
	ManagerID   *int64     `json:"manager_id"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
}

func (dto *UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.EmployeeID != nil {
		v.Field("employee_id", *dto.EmployeeID).Required().MinLength(1).MaxLength(20)
	}
	if dto.Department != nil {
		v.Field("department", *dto.Department).Required().MinLength(1).MaxLength(100)
	}
	if dto.Position != nil {
		v.Field("position", *dto.Position).Required().MinLength(1).MaxLength(100)
	}
	v.Field("salary", dto.SalaryCents).NonNegative(errors.ErrCodeInvalidSalary)
	if dto.HireDate != nil {
		v.Field("hire_date", *dto.HireDate).Required()
	}
	if dto.Status != nil {
		v.Field("status", *dto.Status).Required().OneOf(employeeDatamodel.Statuses(), errors.ErrCodeInvalidStatus)
	}
	if dto.Phone != nil {
		v.Field("phone", *dto.Phone).MaxLength(20)
	}
	return v.Validate()
}

// ApplyTo merges the supplied fields onto an existing record.
func (dto *UpdateEmployeeDTO) ApplyTo(e *employeeDatamodel.Employee) {
	if dto.EmployeeID != nil {
		e.EmployeeID = *dto.EmployeeID
	}
	if dto.Department != nil {
		e.Department = *dto.Department
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.SalaryCents != nil {
		e.SalaryCents = dto.SalaryCents
	}
	if dto.HireDate != nil {
		e.HireDate = *dto.HireDate
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if dto.ManagerID != nil {
		e.ManagerID = dto.ManagerID
	}
	if dto.Phone != nil {
		e.Phone = dto.Phone
	}
	if dto.Address != nil {
		e.Address = dto.Address
	}
}

// Filters are the predicates accepted by the employee listing. Department and
// position are case-insensitive substring matches; status and manager are
// exact.
type Filters struct {
	Department string
	Position   string
	Status     string
	ManagerID  *int64
}

type ListEmployeesResult struct {
	Items []*Employee `json:"items"`
	query.Meta
}
