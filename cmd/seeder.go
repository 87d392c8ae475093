package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/wrkforce/employee-management/internal/employee"
	employeePostgres "github.com/wrkforce/employee-management/internal/employee/postgres"
	"github.com/wrkforce/employee-management/internal/user"
	userPostgres "github.com/wrkforce/employee-management/internal/user/postgres"
	"github.com/wrkforce/employee-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a small organization for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := gormDB.Exec("DELETE FROM employees").Error; err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			if err := gormDB.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		lg := logger.L()
		userRepo := userPostgres.NewUserRepository(gormDB)
		userService := user.NewService(userRepo, lg)
		employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
		employeeService := employee.NewService(employeeRepo, userRepo, lg)

		boolPtr := func(b bool) *bool { return &b }
		int64Ptr := func(n int64) *int64 { return &n }

		users := []*user.CreateUserDTO{
			{Username: "aprilia", Email: "aprilia@wrkforce.dev", FirstName: "April", LastName: "Liana", Role: "admin"},
			{Username: "bsantoso", Email: "budi@wrkforce.dev", FirstName: "Budi", LastName: "Santoso", Role: "manager"},
			{Username: "cwijaya", Email: "citra@wrkforce.dev", FirstName: "Citra", LastName: "Wijaya", Role: "employee"},
			{Username: "dhalim", Email: "dewi@wrkforce.dev", FirstName: "Dewi", LastName: "Halim", Role: "employee"},
			{Username: "guest", Email: "guest@wrkforce.dev", FirstName: "Guest", LastName: "Account", IsActive: boolPtr(false)},
		}

		ids := make(map[string]int64)
		for _, dto := range users {
			created, err := userService.CreateUser(dto)
			if err != nil {
				fmt.Printf("skipping user %s: %v\n", dto.Username, err)
				continue
			}
			ids[dto.Username] = created.ID
			fmt.Printf("Seeded user %s (id=%d)\n", created.Username, created.ID)
		}

		hire := func(year, month, day int) time.Time {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}

		manager, err := employeeService.CreateEmployee(&employee.CreateEmployeeDTO{
			EmployeeID:  "EMP-001",
			UserID:      ids["bsantoso"],
			Department:  "Engineering",
			Position:    "Engineering Manager",
			SalaryCents: int64Ptr(9500000),
			HireDate:    hire(2021, 3, 1),
		})
		if err != nil {
			log.Fatalf("failed to seed manager: %v", err)
		}
		fmt.Printf("Seeded employee %s (id=%d)\n", manager.EmployeeID, manager.ID)

		reports := []*employee.CreateEmployeeDTO{
			{
				EmployeeID:  "EMP-002",
				UserID:      ids["cwijaya"],
				Department:  "Engineering",
				Position:    "Software Engineer",
				SalaryCents: int64Ptr(7200000),
				HireDate:    hire(2022, 7, 18),
				ManagerID:   &manager.ID,
			},
			{
				EmployeeID:  "EMP-003",
				UserID:      ids["dhalim"],
				Department:  "Engineering",
				Position:    "QA Engineer",
				SalaryCents: int64Ptr(6800000),
				HireDate:    hire(2023, 1, 9),
				ManagerID:   &manager.ID,
			},
		}

		for _, dto := range reports {
			created, err := employeeService.CreateEmployee(dto)
			if err != nil {
				fmt.Printf("skipping employee %s: %v\n", dto.EmployeeID, err)
				continue
			}
			fmt.Printf("Seeded employee %s (id=%d)\n", created.EmployeeID, created.ID)
		}

		fmt.Println("Seeding complete")
	},
}
