package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hostelhub/hostel-service/internal/auth"
	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	caches    *cache.CacheManager
	publisher events.EventPublisher
	sessions  *auth.SessionStore
	logger    *slog.Logger
	validator *validator.Validator

	// Service instances
	authService         AuthService
	studentService      StudentService
	roomService         RoomService
	feeService          FeeService
	employeeService     EmployeeService
	expenseService      ExpenseService
	mealService         MealService
	registrationService RegistrationService
	dashboardService    DashboardService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	repo repositories.Repository,
	caches *cache.CacheManager,
	publisher events.EventPublisher,
	sessions *auth.SessionStore,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		sessions:  sessions,
		logger:    logger,
		validator: v,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.sessions, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.caches, sm.publisher, sm.logger, sm.validator)
	sm.roomService = NewRoomService(sm.repo, sm.caches, sm.logger)
	sm.feeService = NewFeeService(sm.repo, sm.caches, sm.publisher, sm.logger, sm.validator)
	sm.employeeService = NewEmployeeService(sm.repo, sm.caches, sm.publisher, sm.logger, sm.validator)
	sm.expenseService = NewExpenseService(sm.repo, sm.caches, sm.logger, sm.validator)
	sm.mealService = NewMealService(sm.repo, sm.logger, sm.validator)
	sm.registrationService = NewRegistrationService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.caches, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Warn("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) require() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.studentService
}

func (sm *serviceManager) Room() RoomService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.roomService
}

func (sm *serviceManager) Fee() FeeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.feeService
}

func (sm *serviceManager) Employee() EmployeeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.employeeService
}

func (sm *serviceManager) Expense() ExpenseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.expenseService
}

func (sm *serviceManager) Meal() MealService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.mealService
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.registrationService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require()
	return sm.dashboardService
}
