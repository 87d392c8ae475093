package postgres

import (
	"errors"
	"time"

	apperrors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
	"github.com/wrkforce/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.Repository using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employeeDatamodel.Employee) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := r.db.Omit("User").Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(e)
		}
		return err
	}
	return nil
}

// duplicateError resolves which unique index a translated duplicate-key error
// violated. TranslateError strips the constraint name, so the colliding row is
// looked up instead.
func (r *EmployeeRepository) duplicateError(e *employeeDatamodel.Employee) error {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("user_id = ? AND id <> ?", e.UserID, e.ID).
		Count(&count).Error
	if err == nil && count > 0 {
		return apperrors.ErrUserHasEmployee
	}
	return apperrors.ErrEmployeeIDExists
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.Preload("User").Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetByEmployeeID looks up the business key, excluding one row for update
// checks. excludeID of 0 matches all rows.
func (r *EmployeeRepository) GetByEmployeeID(code string, excludeID int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	q := r.db.Where("employee_id = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByUserID(userID int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.Where("user_id = ?", userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) List(filters employee.Filters, params query.ListParams) ([]*employeeDatamodel.Employee, int64, error) {
	conds := func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(
			query.ContainsFold("department", filters.Department),
			query.ContainsFold("position", filters.Position),
			query.SearchAny(params.Search, employee.SearchColumns()...),
		)
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.ManagerID != nil {
			db = db.Where("manager_id = ?", *filters.ManagerID)
		}
		return db
	}

	var total int64
	if err := r.db.Model(&employeeDatamodel.Employee{}).Scopes(conds).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employeeDatamodel.Employee
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Scopes(conds).
		Preload("User").
		Scopes(
			query.Order(params.OrderBy, params.OrderDesc, employee.OrderableColumns()),
			query.Paginate(params),
		).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepository) Update(e *employeeDatamodel.Employee) error {
	e.UpdatedAt = time.Now()
	if err := r.db.Omit("User").Save(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(e)
		}
		return err
	}
	return nil
}

// Delete removes the employee and detaches its direct reports in the same
// transaction, so no subordinate keeps a dangling manager_id.
func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("manager_id = ?", id).
			Update("manager_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&employeeDatamodel.Employee{}, id).Error
	})
}

func (r *EmployeeRepository) Subordinates(managerID int64) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.Preload("User").
		Where("manager_id = ?", managerID).
		Find(&employees).Error
	return employees, err
}
