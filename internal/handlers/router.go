package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/auth"
	"github.com/hostelhub/hostel-service/internal/config"
	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	studentHandler      *StudentHandler
	roomHandler         *RoomHandler
	feeHandler          *FeeHandler
	employeeHandler     *EmployeeHandler
	expenseHandler      *ExpenseHandler
	mealHandler         *MealHandler
	registrationHandler *RegistrationHandler
	dashboardHandler    *DashboardHandler

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *auth.SessionStore,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	secureCookies := cfg.Environment == "production"

	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), sessions, cfg.SessionCookieName, secureCookies, logger),
		studentHandler:      NewStudentHandler(serviceManager.Student(), logger),
		roomHandler:         NewRoomHandler(serviceManager.Room(), logger),
		feeHandler:          NewFeeHandler(serviceManager.Fee(), logger),
		employeeHandler:     NewEmployeeHandler(serviceManager.Employee(), logger),
		expenseHandler:      NewExpenseHandler(serviceManager.Expense(), logger),
		mealHandler:         NewMealHandler(serviceManager.Meal(), logger),
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Auth endpoints live outside /api so login works without a session
	router.POST("/login", hm.authHandler.Login)
	router.GET("/check-auth", hm.authHandler.CheckAuth)
	router.POST("/logout", hm.authHandler.Logout)

	// Legacy paths kept for older frontends
	requireSession := hm.authHandler.RequireSession()
	router.POST("/collect-fee", requireSession, hm.feeHandler.CollectFee)
	router.GET("/fee-records", requireSession, hm.feeHandler.ListRecords)

	api := router.Group("/api")
	{
		// Public endpoints: the registration form and the meals board
		// are reachable without a session.
		api.GET("/meals/public", hm.mealHandler.Overview)
		api.POST("/registration", hm.registrationHandler.Submit)
		api.GET("/export_pdf/:year/:month", hm.expenseHandler.ExportReport)

		protected := api.Group("")
		protected.Use(requireSession)
		{
			protected.GET("/dashboard", hm.dashboardHandler.Overview)

			students := protected.Group("/students")
			{
				students.GET("", hm.studentHandler.ListStudents)
				students.POST("", hm.studentHandler.CreateStudent)
				students.PUT("/:id", hm.studentHandler.UpdateStudent)
				students.DELETE("/:id", hm.studentHandler.DeleteStudent)
				students.POST("/bulk-upload", hm.studentHandler.BulkUpload)
				students.GET("/download-template", hm.studentHandler.DownloadTemplate)
			}

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", hm.roomHandler.ListRooms)
				rooms.GET("/availability", hm.roomHandler.Availability)
			}

			protected.GET("/fees", hm.feeHandler.Overview)

			employees := protected.Group("/employees")
			{
				employees.GET("", hm.employeeHandler.ListEmployees)
				employees.POST("", hm.employeeHandler.CreateEmployee)
				employees.PUT("/:id", hm.employeeHandler.UpdateEmployee)
				employees.DELETE("/:id", hm.employeeHandler.DeleteEmployee)
				employees.GET("/:id/salaries", hm.employeeHandler.ListSalaries)
				employees.POST("/:id/salaries", hm.employeeHandler.PaySalary)
			}

			salaries := protected.Group("/salaries")
			{
				salaries.PUT("/:id", hm.employeeHandler.UpdateSalary)
				salaries.DELETE("/:id", hm.employeeHandler.DeleteSalary)
				salaries.GET("/summary/:month_year", hm.employeeHandler.MonthlySummary)
				salaries.GET("/yearly-summary/:year", hm.employeeHandler.YearlySummary)
				salaries.GET("/available-months", hm.employeeHandler.AvailableMonths)
			}

			expenses := protected.Group("/expenses")
			{
				expenses.GET("", hm.expenseHandler.Overview)
				expenses.POST("", hm.expenseHandler.CreateExpense)
				expenses.DELETE("", hm.expenseHandler.DeleteExpense)
			}

			meals := protected.Group("/meals")
			{
				meals.GET("", hm.mealHandler.Overview)
				meals.PUT("/timings", hm.mealHandler.UpdateTimings)
				meals.PUT("/menu", hm.mealHandler.UpdateMenu)
			}

			registrations := protected.Group("/admin/registrations")
			{
				registrations.GET("", hm.registrationHandler.ListRegistrations)
				registrations.GET("/stats", hm.registrationHandler.Stats)
				registrations.PUT("/:id", hm.registrationHandler.UpdateStatus)
				registrations.DELETE("/:id", hm.registrationHandler.DeleteRegistration)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "hostel-service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "hostel-service",
		})
	})
}
