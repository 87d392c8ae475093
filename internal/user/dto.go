package user

import (
	errors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	"github.com/wrkforce/employee-management/internal/core/common/validation"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
)

// CreateUserDTO is the request payload for creating a user. Role defaults to
// "user" and IsActive to true when omitted.
type CreateUserDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
}

func (dto *CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MinLength(3).MaxLength(50)
	v.Field("email", dto.Email).Required().Email().MaxLength(100)
	v.Field("first_name", dto.FirstName).Required().MinLength(1).MaxLength(50)
	v.Field("last_name", dto.LastName).Required().MinLength(1).MaxLength(50)
	v.Field("role", dto.Role).OneOf(userDatamodel.Roles(), errors.ErrCodeInvalidRole)
	return v.Validate()
}

func (dto *CreateUserDTO) ToDomain() *User {
	role := dto.Role
	if role == "" {
		role = userDatamodel.RoleUser
	}
	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}
	return &User{
		Username:  dto.Username,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      role,
		IsActive:  isActive,
	}
}

// UpdateUserDTO is a partial update: nil fields are left untouched.
type UpdateUserDTO struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

func (dto *UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Username != nil {
		v.Field("username", *dto.Username).Required().MinLength(3).MaxLength(50)
	}
	if dto.Email != nil {
		v.Field("email", *dto.Email).Required().Email().MaxLength(100)
	}
	if dto.FirstName != nil {
		v.Field("first_name", *dto.FirstName).Required().MinLength(1).MaxLength(50)
	}
	if dto.LastName != nil {
		v.Field("last_name", *dto.LastName).Required().MinLength(1).MaxLength(50)
	}
	if dto.Role != nil {
		v.Field("role", *dto.Role).Required().OneOf(userDatamodel.Roles(), errors.ErrCodeInvalidRole)
	}
	return v.Validate()
}

// ApplyTo merges the supplied fields onto an existing record.
func (dto *UpdateUserDTO) ApplyTo(u *userDatamodel.User) {
	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
}

// Filters are the exact-match predicates accepted by the user listing.
type Filters struct {
	Role     string
	IsActive *bool
}

type ListUsersResult struct {
	Items []*User `json:"items"`
	query.Meta
}
