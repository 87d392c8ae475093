package postgres

import (
	"errors"
	"time"

	apperrors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
	"github.com/wrkforce/employee-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique indexes on username and email are the
// authoritative guard against concurrent duplicates; a translated duplicate-key
// error surfaces as the same conflict the service pre-check reports.
func (r *UserRepository) Create(u *userDatamodel.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByUsernameOrEmail returns any other user holding either value, used for
// the uniqueness pre-checks. excludeID of 0 matches all rows.
func (r *UserRepository) FindByUsernameOrEmail(username, email string, excludeID int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	q := r.db.Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(filters user.Filters, params query.ListParams) ([]*userDatamodel.User, int64, error) {
	conds := func(db *gorm.DB) *gorm.DB {
		if filters.Role != "" {
			db = db.Where("role = ?", filters.Role)
		}
		if filters.IsActive != nil {
			db = db.Where("is_active = ?", *filters.IsActive)
		}
		return db.Scopes(query.SearchAny(params.Search, user.SearchColumns()...))
	}

	var total int64
	if err := r.db.Model(&userDatamodel.User{}).Scopes(conds).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*userDatamodel.User
	err := r.db.Model(&userDatamodel.User{}).
		Scopes(
			conds,
			query.Order(params.OrderBy, params.OrderDesc, user.OrderableColumns()),
			query.Paginate(params),
		).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	u.UpdatedAt = time.Now()
	if err := r.db.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}

func (r *UserRepository) HasEmployee(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
