package employee

import (
	"time"

	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
	StatusOnLeave    = "on_leave"
)

// Employee links one user to one employment record. SalaryCents keeps money in
// minor currency units; ManagerID is a plain foreign key into the same table.
type Employee struct {
	ID          int64      `gorm:"primaryKey"`
	EmployeeID  string     `gorm:"column:employee_id;type:varchar(20);uniqueIndex;not null"`
	UserID      int64      `gorm:"column:user_id;uniqueIndex;not null"`
	Department  string     `gorm:"column:department;type:varchar(100);not null"`
	Position    string     `gorm:"column:position;type:varchar(100);not null"`
	SalaryCents *int64     `gorm:"column:salary_cents"`
	HireDate    time.Time  `gorm:"column:hire_date;not null"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:active"`
	ManagerID   *int64     `gorm:"column:manager_id"`
	Phone       *string    `gorm:"column:phone;type:varchar(20)"`
	Address     *string    `gorm:"column:address;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`

	User userDatamodel.User `gorm:"foreignKey:UserID"`
}

func (Employee) TableName() string {
	return "employees"
}

func Statuses() []string {
	return []string{StatusActive, StatusInactive, StatusTerminated, StatusOnLeave}
}
