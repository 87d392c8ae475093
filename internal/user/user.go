package user

import (
	"time"

	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == userDatamodel.RoleAdmin
}

// SearchColumns are the text columns the free-text search term matches against.
func SearchColumns() []string {
	return []string{"username", "email", "first_name", "last_name"}
}

// OrderableColumns maps the order_by fields a listing accepts to their
// columns.
func OrderableColumns() map[string]string {
	return map[string]string{
		"id":         "id",
		"username":   "username",
		"email":      "email",
		"first_name": "first_name",
		"last_name":  "last_name",
		"role":       "role",
		"is_active":  "is_active",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
