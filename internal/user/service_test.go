package user_test

import (
	stderrors "errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	errors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
	"github.com/wrkforce/employee-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.Repository for testing
type MockRepository struct {
	users      map[int64]*userDatamodel.User
	employees  map[int64]bool
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:     make(map[int64]*userDatamodel.User),
		employees: make(map[int64]bool),
		nextID:    1,
	}
}

func (m *MockRepository) Create(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.users[id], nil
}

func (m *MockRepository) FindByUsernameOrEmail(username, email string, excludeID int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.users {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List(filters user.Filters, params query.ListParams) ([]*userDatamodel.User, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var matched []*userDatamodel.User
	for _, u := range m.users {
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		if filters.IsActive != nil && u.IsActive != *filters.IsActive {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(params.Search)) {
			continue
		}
		matched = append(matched, u)
	}
	total := int64(len(matched))
	offset := params.Offset()
	if offset > len(matched) {
		return nil, total, nil
	}
	end := offset + params.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *MockRepository) Update(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.users, id)
	return nil
}

func (m *MockRepository) HasEmployee(userID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.employees[userID], nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("User Service", func() {
	var (
		mockRepo *MockRepository
		service  *user.Service
	)

	newDTO := func() *user.CreateUserDTO {
		return &user.CreateUserDTO{
			Username:  "jdoe",
			Email:     "j@x.com",
			FirstName: "J",
			LastName:  "Doe",
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, lg)
	})

	Describe("CreateUser", func() {
		It("creates a user with defaults applied", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.Username).To(Equal("jdoe"))
			Expect(created.Role).To(Equal("user"))
			Expect(created.IsActive).To(BeTrue())
		})

		It("rejects a duplicate username", func() {
			_, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			dup := newDTO()
			dup.Email = "other@x.com"
			_, err = service.CreateUser(dup)
			Expect(err).To(Equal(errors.ErrUserExists))
		})

		It("rejects a duplicate email even with a different username", func() {
			_, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			dup := newDTO()
			dup.Username = "someoneelse"
			_, err = service.CreateUser(dup)
			Expect(err).To(Equal(errors.ErrUserExists))
		})

		It("rejects invalid payloads before touching the store", func() {
			dto := newDTO()
			dto.Username = "ab"
			_, err := service.CreateUser(dto)

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
			Expect(mockRepo.users).To(BeEmpty())
		})

		It("wraps store failures as internal errors", func() {
			mockRepo.SetShouldFail(true, stderrors.New("connection refused"))

			_, err := service.CreateUser(newDTO())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeInternal))
		})
	})

	Describe("GetUser", func() {
		It("returns not found for a missing id", func() {
			_, err := service.GetUser(42)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})

		It("returns the stored user", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			got, err := service.GetUser(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Email).To(Equal("j@x.com"))
		})
	})

	Describe("UpdateUser", func() {
		It("applies only the supplied fields", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			first := "Jane"
			updated, err := service.UpdateUser(created.ID, &user.UpdateUserDTO{FirstName: &first})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Jane"))
			Expect(updated.Username).To(Equal("jdoe"))
			Expect(updated.Email).To(Equal("j@x.com"))
		})

		It("rejects a username already held by another user", func() {
			first, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			other := newDTO()
			other.Username = "asmith"
			other.Email = "a@x.com"
			second, err := service.CreateUser(other)
			Expect(err).NotTo(HaveOccurred())

			taken := first.Username
			_, err = service.UpdateUser(second.ID, &user.UpdateUserDTO{Username: &taken})
			Expect(err).To(Equal(errors.ErrUserExists))
		})

		It("allows a user to keep its own username", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			same := created.Username
			_, err = service.UpdateUser(created.ID, &user.UpdateUserDTO{Username: &same})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns not found for a missing id", func() {
			name := "ghost"
			_, err := service.UpdateUser(99, &user.UpdateUserDTO{Username: &name})
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})
	})

	Describe("DeleteUser", func() {
		It("removes an unlinked user", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteUser(created.ID)).To(Succeed())
			Expect(mockRepo.users).To(BeEmpty())
		})

		It("returns not found for a missing id", func() {
			err := service.DeleteUser(7)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})

		It("rejects deleting a user linked to an employee", func() {
			created, err := service.CreateUser(newDTO())
			Expect(err).NotTo(HaveOccurred())
			mockRepo.employees[created.ID] = true

			err = service.DeleteUser(created.ID)
			Expect(err).To(Equal(errors.ErrUserLinkedEmployee))
			Expect(mockRepo.users).To(HaveKey(created.ID))
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			for _, username := range []string{"alice", "bob", "carol"} {
				dto := newDTO()
				dto.Username = username
				dto.Email = username + "@x.com"
				_, err := service.CreateUser(dto)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns pagination metadata", func() {
			result, err := service.ListUsers(user.Filters{}, query.ListParams{Page: 1, Size: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Items).To(HaveLen(2))
			Expect(result.Total).To(Equal(int64(3)))
			Expect(result.Pages).To(Equal(2))
		})

		It("normalizes out-of-range params", func() {
			result, err := service.ListUsers(user.Filters{}, query.ListParams{Page: 0, Size: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Page).To(Equal(1))
			Expect(result.Size).To(Equal(10))
		})
	})
})
