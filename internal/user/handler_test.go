package user_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	employeeDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/employee"
	userDatamodel "github.com/wrkforce/employee-management/internal/core/datamodel/user"
	"github.com/wrkforce/employee-management/internal/user"
	userPostgres "github.com/wrkforce/employee-management/internal/user/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

var _ = Describe("User Handler Integration", func() {
	var (
		db      *gorm.DB
		router  chi.Router
		handler *user.Handler
	)

	doJSON := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &employeeDatamodel.Employee{})).To(Succeed())

		repo := userPostgres.NewUserRepository(db)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := user.NewService(repo, slogger)
		handler = user.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/v1/users", func(r chi.Router) {
			r.Post("/", handler.CreateUser)
			r.Get("/", handler.ListUsers)
			r.Get("/{id}", handler.GetUser)
			r.Put("/{id}", handler.UpdateUser)
			r.Delete("/{id}", handler.DeleteUser)
		})
	})

	createUser := func(username, email string) *user.User {
		payload := `{"username":"` + username + `","email":"` + email + `","first_name":"Test","last_name":"User"}`
		w := doJSON(http.MethodPost, "/api/v1/users", payload)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created user.User
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return &created
	}

	It("creates a user and returns it with defaults applied", func() {
		created := createUser("jdoe", "j@x.com")
		Expect(created.ID).NotTo(BeZero())
		Expect(created.Role).To(Equal("user"))
		Expect(created.IsActive).To(BeTrue())
	})

	It("rejects malformed JSON with 400", func() {
		w := doJSON(http.MethodPost, "/api/v1/users", `{"username":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers duplicate usernames with 400", func() {
		createUser("jdoe", "j@x.com")
		w := doJSON(http.MethodPost, "/api/v1/users", `{"username":"jdoe","email":"other@x.com","first_name":"T","last_name":"U"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("already exists"))
	})

	It("answers a missing user with 404", func() {
		w := doJSON(http.MethodGet, "/api/v1/users/999", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers a non-numeric id with 400", func() {
		w := doJSON(http.MethodGet, "/api/v1/users/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("fetches a created user by id", func() {
		created := createUser("jdoe", "j@x.com")

		w := doJSON(http.MethodGet, "/api/v1/users/"+itoa(created.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Username).To(Equal("jdoe"))
	})

	It("lists users with pagination metadata", func() {
		createUser("alice", "alice@x.com")
		createUser("bob", "bob@x.com")

		w := doJSON(http.MethodGet, "/api/v1/users?page=1&size=1", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var result user.ListUsersResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Items).To(HaveLen(1))
		Expect(result.Total).To(Equal(int64(2)))
		Expect(result.Pages).To(Equal(2))
	})

	It("rejects a zero page with 400", func() {
		w := doJSON(http.MethodGet, "/api/v1/users?page=0", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects an oversized page size with 400", func() {
		w := doJSON(http.MethodGet, "/api/v1/users?size=500", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a non-numeric page with 400", func() {
		w := doJSON(http.MethodGet, "/api/v1/users?page=abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("filters the listing by search", func() {
		createUser("alice", "alice@x.com")
		createUser("bob", "bob@x.com")

		w := doJSON(http.MethodGet, "/api/v1/users?search=ALI", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var result user.ListUsersResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Items).To(HaveLen(1))
		Expect(result.Items[0].Username).To(Equal("alice"))
	})

	It("updates only the supplied fields", func() {
		created := createUser("jdoe", "j@x.com")

		w := doJSON(http.MethodPut, "/api/v1/users/"+itoa(created.ID), `{"first_name":"Jane"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var updated user.User
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.FirstName).To(Equal("Jane"))
		Expect(updated.Username).To(Equal("jdoe"))
	})

	It("deletes a user and returns 204", func() {
		created := createUser("jdoe", "j@x.com")

		w := doJSON(http.MethodDelete, "/api/v1/users/"+itoa(created.ID), "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = doJSON(http.MethodGet, "/api/v1/users/"+itoa(created.ID), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("refuses to delete a user linked to an employee", func() {
		created := createUser("jdoe", "j@x.com")
		Expect(db.Create(&employeeDatamodel.Employee{
			EmployeeID: "EMP-001",
			UserID:     created.ID,
			Department: "Engineering",
			Position:   "Engineer",
			Status:     employeeDatamodel.StatusActive,
		}).Error).NotTo(HaveOccurred())

		w := doJSON(http.MethodDelete, "/api/v1/users/"+itoa(created.ID), "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("linked"))
	})
})
