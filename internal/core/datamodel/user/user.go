package user

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleUser     = "user"
)

type User struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(50);uniqueIndex;not null"`
	Email     string    `gorm:"column:email;type:varchar(100);uniqueIndex;not null"`
	FirstName string    `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(50);not null"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:user"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleEmployee, RoleUser}
}
