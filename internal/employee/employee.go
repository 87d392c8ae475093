package employee

import (
	"time"

	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
	"github.com/wrkforce/employee-management/internal/user"
)

// Employee is the domain view of an employment record, carrying the linked
// user for responses.
type Employee struct {
	ID          int64      `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	UserID      int64      `json:"user_id"`
	Department  string     `json:"department"`
	Position    string     `json:"position"`
	SalaryCents *int64     `json:"salary,omitempty"`
	HireDate    time.Time  `json:"hire_date"`
	Status      string     `json:"status"`
	ManagerID   *int64     `json:"manager_id,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        *user.User `json:"user,omitempty"`
}

func (e *Employee) IsActive() bool {
	return e.Status == employeeDatamodel.StatusActive
}

// SearchColumns are the text columns the free-text search term matches against.
func SearchColumns() []string {
	return []string{"employee_id", "department", "position"}
}

// OrderableColumns maps the order_by fields a listing accepts to their
// columns. The API exposes salary, which sorts on the salary_cents column.
func OrderableColumns() map[string]string {
	return map[string]string{
		"id":          "id",
		"employee_id": "employee_id",
		"department":  "department",
		"position":    "position",
		"salary":      "salary_cents",
		"hire_date":   "hire_date",
		"status":      "status",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		UserID:      e.UserID,
		Department:  e.Department,
		Position:    e.Position,
		SalaryCents: e.SalaryCents,
		HireDate:    e.HireDate,
		Status:      e.Status,
		ManagerID:   e.ManagerID,
		Phone:       e.Phone,
		Address:     e.Address,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	out := &Employee{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		UserID:      e.UserID,
		Department:  e.Department,
		Position:    e.Position,
		SalaryCents: e.SalaryCents,
		HireDate:    e.HireDate,
		Status:      e.Status,
		ManagerID:   e.ManagerID,
		Phone:       e.Phone,
		Address:     e.Address,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.User.ID != 0 {
		out.User = user.FromDataModel(&e.User)
	}
	return out
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}
