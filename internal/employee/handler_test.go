package employee_test

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
	"github.com/wrkforce/employee-management/internal/employee"
	employeePostgres "github.com/wrkforce/employee-management/internal/employee/postgres"
	userPostgres "github.com/wrkforce/employee-management/internal/user/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Employee Handler Integration", func() {
	var (
		db     *gorm.DB
		router chi.Router
	)

	itoa := func(id int64) string {
		return strconv.FormatInt(id, 10)
	}

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

	seedUser := func(username string) *userDatamodel.User {
		u := &userDatamodel.User{
			Username:  username,
			Email:     username + "@x.com",
			FirstName: "Test",
			LastName:  "User",
			Role:      userDatamodel.RoleUser,
			IsActive:  true,
		}
		Expect(db.Create(u).Error).NotTo(HaveOccurred())
		return u
	}

	createEmployee := func(code string, userID int64, managerID *int64) *employee.Employee {
		payload := map[string]interface{}{
			"employee_id": code,
			"user_id":     userID,
			"department":  "Engineering",
			"position":    "Engineer",
			"hire_date":   "2024-03-01T00:00:00Z",
		}
		if managerID != nil {
			payload["manager_id"] = *managerID
		}
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())

		w := doJSON(http.MethodPost, "/api/v1/employees", string(body))
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return &created
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &employeeDatamodel.Employee{})).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		userRepo := userPostgres.NewUserRepository(db)
		repo := employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, userRepo, slogger)
		handler := employee.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/v1/employees", func(r chi.Router) {
			r.Post("/", handler.CreateEmployee)
			r.Get("/", handler.ListEmployees)
			r.Get("/{id}", handler.GetEmployee)
			r.Put("/{id}", handler.UpdateEmployee)
			r.Delete("/{id}", handler.DeleteEmployee)
			r.Get("/{id}/subordinates", handler.Subordinates)
		})
	})

	It("creates an employee and embeds the linked user", func() {
		u := seedUser("jdoe")
		created := createEmployee("EMP-001", u.ID, nil)

		Expect(created.ID).NotTo(BeZero())
		Expect(created.Status).To(Equal("active"))
		Expect(created.User).NotTo(BeNil())
		Expect(created.User.Username).To(Equal("jdoe"))
	})

	It("answers a missing user reference with 404", func() {
		w := doJSON(http.MethodPost, "/api/v1/employees",
			`{"employee_id":"EMP-001","user_id":99,"department":"Engineering","position":"Engineer","hire_date":"2024-03-01T00:00:00Z"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers a duplicate employee_id with 400", func() {
		first := seedUser("jdoe")
		second := seedUser("asmith")
		createEmployee("EMP-001", first.ID, nil)

		w := doJSON(http.MethodPost, "/api/v1/employees",
			`{"employee_id":"EMP-001","user_id":`+itoa(second.ID)+`,"department":"Engineering","position":"Engineer","hire_date":"2024-03-01T00:00:00Z"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("already exists"))
	})

	It("answers a missing employee with 404", func() {
		w := doJSON(http.MethodGet, "/api/v1/employees/999", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("lists employees filtered by department substring", func() {
		first := seedUser("jdoe")
		second := seedUser("asmith")
		createEmployee("EMP-001", first.ID, nil)
		created := createEmployee("EMP-002", second.ID, nil)

		w := doJSON(http.MethodPut, "/api/v1/employees/"+itoa(created.ID), `{"department":"Sales"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = doJSON(http.MethodGet, "/api/v1/employees?department=sal", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var result employee.ListEmployeesResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Items).To(HaveLen(1))
		Expect(result.Items[0].EmployeeID).To(Equal("EMP-002"))
	})

	It("rejects out-of-range pagination with 400", func() {
		w := doJSON(http.MethodGet, "/api/v1/employees?page=0&size=500", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("orders the listing by salary", func() {
		first := seedUser("jdoe")
		second := seedUser("asmith")
		low := createEmployee("EMP-001", first.ID, nil)
		high := createEmployee("EMP-002", second.ID, nil)

		Expect(db.Model(&employeeDatamodel.Employee{}).
			Where("id = ?", low.ID).Update("salary_cents", 100).Error).NotTo(HaveOccurred())
		Expect(db.Model(&employeeDatamodel.Employee{}).
			Where("id = ?", high.ID).Update("salary_cents", 900).Error).NotTo(HaveOccurred())

		w := doJSON(http.MethodGet, "/api/v1/employees?order_by=salary&order_desc=true", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var result employee.ListEmployeesResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Items[0].EmployeeID).To(Equal("EMP-002"))
		Expect(result.Items[1].EmployeeID).To(Equal("EMP-001"))
	})

	It("rejects an employee managing itself", func() {
		u := seedUser("jdoe")
		created := createEmployee("EMP-001", u.ID, nil)

		w := doJSON(http.MethodPut, "/api/v1/employees/"+itoa(created.ID), `{"manager_id":`+itoa(created.ID)+`}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("manage itself"))
	})

	It("lists subordinates of a manager", func() {
		managerUser := seedUser("manager")
		reportUser := seedUser("report")
		manager := createEmployee("EMP-001", managerUser.ID, nil)
		createEmployee("EMP-002", reportUser.ID, &manager.ID)

		w := doJSON(http.MethodGet, "/api/v1/employees/"+itoa(manager.ID)+"/subordinates", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var reports []*employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&reports)).To(Succeed())
		Expect(reports).To(HaveLen(1))
		Expect(reports[0].EmployeeID).To(Equal("EMP-002"))
	})

	It("deletes an employee and detaches its reports", func() {
		managerUser := seedUser("manager")
		reportUser := seedUser("report")
		manager := createEmployee("EMP-001", managerUser.ID, nil)
		report := createEmployee("EMP-002", reportUser.ID, &manager.ID)

		w := doJSON(http.MethodDelete, "/api/v1/employees/"+itoa(manager.ID), "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = doJSON(http.MethodGet, "/api/v1/employees/"+itoa(report.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var kept employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&kept)).To(Succeed())
		Expect(kept.ManagerID).To(BeNil())
	})
})
