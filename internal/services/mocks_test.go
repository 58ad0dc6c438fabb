package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	admins        []*models.Admin
	students      []*models.Student
	rooms         []*models.Room
	feeRecords    []*models.FeeRecord
	employees     []*models.Employee
	salaryRecords []*models.SalaryRecord
	expenses      []*models.Expense
	timings       []*models.MealTiming
	menu          []*models.MealMenu
	registrations []*models.Registration

	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) id() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepository) Admin() repositories.AdminRepository               { return &mockAdminRepo{m} }
func (m *mockRepository) Student() repositories.StudentRepository           { return &mockStudentRepo{m} }
func (m *mockRepository) Room() repositories.RoomRepository                 { return &mockRoomRepo{m} }
func (m *mockRepository) Fee() repositories.FeeRepository                   { return &mockFeeRepo{m} }
func (m *mockRepository) Employee() repositories.EmployeeRepository         { return &mockEmployeeRepo{m} }
func (m *mockRepository) Salary() repositories.SalaryRepository             { return &mockSalaryRepo{m} }
func (m *mockRepository) Expense() repositories.ExpenseRepository           { return &mockExpenseRepo{m} }
func (m *mockRepository) Meal() repositories.MealRepository                 { return &mockMealRepo{m} }
func (m *mockRepository) Registration() repositories.RegistrationRepository { return &mockRegistrationRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== ADMINS =====

type mockAdminRepo struct{ m *mockRepository }

func (r *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = r.m.id()
	r.m.admins = append(r.m.admins, admin)
	return nil
}

func (r *mockAdminRepo) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	for _, admin := range r.m.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, nil
}

func (r *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	for _, admin := range r.m.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, nil
}

// ===== STUDENTS =====

type mockStudentRepo struct{ m *mockRepository }

func (r *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = r.m.id()
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = time.Now()
	}
	r.m.students = append(r.m.students, student)
	return nil
}

func (r *mockStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	for _, student := range r.m.students {
		if student.ID == id {
			return student, nil
		}
	}
	return nil, nil
}

func (r *mockStudentRepo) GetByName(ctx context.Context, name string) (*models.Student, error) {
	for _, student := range r.m.students {
		if student.Name == name {
			return student, nil
		}
	}
	return nil, nil
}

func (r *mockStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var matched []*models.Student
	for _, student := range r.m.students {
		if filters.Search != "" && !strings.Contains(strings.ToLower(student.Name), strings.ToLower(filters.Search)) {
			continue
		}
		matched = append(matched, student)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (filters.Page - 1) * filters.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filters.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	for i, existing := range r.m.students {
		if existing.ID == student.ID {
			r.m.students[i] = student
			return nil
		}
	}
	return nil
}

func (r *mockStudentRepo) Delete(ctx context.Context, id uint) error {
	for i, student := range r.m.students {
		if student.ID == id {
			r.m.students = append(r.m.students[:i], r.m.students[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *mockStudentRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, student := range r.m.students {
		if student.Status == models.StudentActive {
			count++
		}
	}
	return count, nil
}

func (r *mockStudentRepo) CountActiveByFeeStatus(ctx context.Context, status models.FeeStatus) (int64, error) {
	var count int64
	for _, student := range r.m.students {
		if student.Status == models.StudentActive && student.FeeStatus == status {
			count++
		}
	}
	return count, nil
}

func (r *mockStudentRepo) SumActiveFees(ctx context.Context) (float64, error) {
	var sum float64
	for _, student := range r.m.students {
		if student.Status == models.StudentActive {
			sum += student.Fee
		}
	}
	return sum, nil
}

// ===== ROOMS =====

type mockRoomRepo struct{ m *mockRepository }

func (r *mockRoomRepo) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	for _, room := range r.m.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, nil
}

func (r *mockRoomRepo) ListWithStudents(ctx context.Context) ([]*models.Room, error) {
	rooms := make([]*models.Room, len(r.m.rooms))
	for i, room := range r.m.rooms {
		copied := *room
		copied.Students = nil
		for _, student := range r.m.students {
			if student.RoomID == room.ID {
				copied.Students = append(copied.Students, *student)
			}
		}
		rooms[i] = &copied
	}
	return rooms, nil
}

func (r *mockRoomRepo) Occupancy(ctx context.Context, roomID uint) (int, error) {
	count := 0
	for _, student := range r.m.students {
		if student.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (r *mockRoomRepo) Availability(ctx context.Context) (*repositories.RoomAvailability, error) {
	availability := &repositories.RoomAvailability{}
	for _, room := range r.m.rooms {
		availability.RoomsTotal++
		occupancy, _ := r.Occupancy(ctx, room.ID)
		if occupancy < room.Capacity {
			availability.RoomsAvailable++
		} else {
			availability.RoomsOccupied++
		}
	}
	return availability, nil
}

// ===== FEES =====

type mockFeeRepo struct{ m *mockRepository }

func (r *mockFeeRepo) Create(ctx context.Context, record *models.FeeRecord) error {
	record.ID = r.m.id()
	r.m.feeRecords = append(r.m.feeRecords, record)
	return nil
}

func (r *mockFeeRepo) ListAll(ctx context.Context) ([]*models.FeeRecord, error) {
	return r.m.feeRecords, nil
}

func (r *mockFeeRepo) inMonth(record *models.FeeRecord, year, month int) bool {
	date := time.Time(record.DatePaid)
	return date.Year() == year && int(date.Month()) == month
}

func (r *mockFeeRepo) ListByMonth(ctx context.Context, year, month int) ([]*models.FeeRecord, error) {
	var records []*models.FeeRecord
	for _, record := range r.m.feeRecords {
		if r.inMonth(record, year, month) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *mockFeeRepo) SumByMonth(ctx context.Context, year, month int) (float64, error) {
	var sum float64
	for _, record := range r.m.feeRecords {
		if r.inMonth(record, year, month) {
			sum += record.Amount
		}
	}
	return sum, nil
}

func (r *mockFeeRepo) SumForStudentMonth(ctx context.Context, studentID uint, year, month int) (float64, error) {
	var sum float64
	for _, record := range r.m.feeRecords {
		if record.StudentID == studentID && r.inMonth(record, year, month) {
			sum += record.Amount
		}
	}
	return sum, nil
}

func (r *mockFeeRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	var kept []*models.FeeRecord
	for _, record := range r.m.feeRecords {
		if record.StudentID != studentID {
			kept = append(kept, record)
		}
	}
	r.m.feeRecords = kept
	return nil
}

// ===== EMPLOYEES =====

type mockEmployeeRepo struct{ m *mockRepository }

func (r *mockEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	employee.ID = r.m.id()
	if employee.HireDate.IsZero() {
		employee.HireDate = time.Now()
	}
	r.m.employees = append(r.m.employees, employee)
	return nil
}

func (r *mockEmployeeRepo) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	for _, employee := range r.m.employees {
		if employee.ID == id {
			return employee, nil
		}
	}
	return nil, nil
}

func (r *mockEmployeeRepo) GetByName(ctx context.Context, name string) (*models.Employee, error) {
	for _, employee := range r.m.employees {
		if employee.Name == name {
			return employee, nil
		}
	}
	return nil, nil
}

func (r *mockEmployeeRepo) List(ctx context.Context) ([]*models.Employee, error) {
	return r.m.employees, nil
}

func (r *mockEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	for i, existing := range r.m.employees {
		if existing.ID == employee.ID {
			r.m.employees[i] = employee
			return nil
		}
	}
	return nil
}

func (r *mockEmployeeRepo) Delete(ctx context.Context, id uint) error {
	for i, employee := range r.m.employees {
		if employee.ID == id {
			r.m.employees = append(r.m.employees[:i], r.m.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *mockEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, employee := range r.m.employees {
		if employee.Status == models.EmployeeActive {
			count++
		}
	}
	return count, nil
}

// ===== SALARIES =====

type mockSalaryRepo struct{ m *mockRepository }

func (r *mockSalaryRepo) Create(ctx context.Context, record *models.SalaryRecord) error {
	record.ID = r.m.id()
	if record.DatePaid.IsZero() {
		record.DatePaid = time.Now()
	}
	for _, employee := range r.m.employees {
		if employee.ID == record.EmployeeID {
			record.Employee = employee
		}
	}
	r.m.salaryRecords = append(r.m.salaryRecords, record)
	return nil
}

func (r *mockSalaryRepo) GetByID(ctx context.Context, id uint) (*models.SalaryRecord, error) {
	for _, record := range r.m.salaryRecords {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, nil
}

func (r *mockSalaryRepo) GetByEmployeeMonth(ctx context.Context, employeeID uint, monthYear string) (*models.SalaryRecord, error) {
	for _, record := range r.m.salaryRecords {
		if record.EmployeeID == employeeID && record.MonthYear == monthYear {
			return record, nil
		}
	}
	return nil, nil
}

func (r *mockSalaryRepo) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	for _, record := range r.m.salaryRecords {
		if record.EmployeeID == employeeID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *mockSalaryRepo) ListByMonth(ctx context.Context, monthYear string) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	for _, record := range r.m.salaryRecords {
		if record.MonthYear == monthYear {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *mockSalaryRepo) ListByYear(ctx context.Context, year int) ([]*models.SalaryRecord, error) {
	prefix := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
	var records []*models.SalaryRecord
	for _, record := range r.m.salaryRecords {
		if strings.HasPrefix(record.MonthYear, prefix) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *mockSalaryRepo) SumByMonth(ctx context.Context, monthYear string) (float64, error) {
	var sum float64
	for _, record := range r.m.salaryRecords {
		if record.MonthYear == monthYear {
			sum += record.AmountPaid
		}
	}
	return sum, nil
}

func (r *mockSalaryRepo) AvailableMonths(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var months []string
	for _, record := range r.m.salaryRecords {
		if !seen[record.MonthYear] {
			seen[record.MonthYear] = true
			months = append(months, record.MonthYear)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func (r *mockSalaryRepo) AvailableYears(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var years []string
	for _, record := range r.m.salaryRecords {
		year := record.MonthYear[:4]
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, nil
}

func (r *mockSalaryRepo) Update(ctx context.Context, record *models.SalaryRecord) error {
	for i, existing := range r.m.salaryRecords {
		if existing.ID == record.ID {
			r.m.salaryRecords[i] = record
			return nil
		}
	}
	return nil
}

func (r *mockSalaryRepo) Delete(ctx context.Context, id uint) error {
	for i, record := range r.m.salaryRecords {
		if record.ID == id {
			r.m.salaryRecords = append(r.m.salaryRecords[:i], r.m.salaryRecords[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *mockSalaryRepo) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	var kept []*models.SalaryRecord
	for _, record := range r.m.salaryRecords {
		if record.EmployeeID != employeeID {
			kept = append(kept, record)
		}
	}
	r.m.salaryRecords = kept
	return nil
}

// ===== EXPENSES =====

type mockExpenseRepo struct{ m *mockRepository }

func (r *mockExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	expense.ID = r.m.id()
	r.m.expenses = append(r.m.expenses, expense)
	return nil
}

func (r *mockExpenseRepo) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	for _, expense := range r.m.expenses {
		if expense.ID == id {
			return expense, nil
		}
	}
	return nil, nil
}

func (r *mockExpenseRepo) inMonth(expense *models.Expense, year, month int) bool {
	date := time.Time(expense.Date)
	return date.Year() == year && int(date.Month()) == month
}

func (r *mockExpenseRepo) ListByMonth(ctx context.Context, year, month int) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for _, expense := range r.m.expenses {
		if r.inMonth(expense, year, month) {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (r *mockExpenseRepo) SumByMonth(ctx context.Context, year, month int) (float64, error) {
	var sum float64
	for _, expense := range r.m.expenses {
		if r.inMonth(expense, year, month) {
			sum += expense.Price
		}
	}
	return sum, nil
}

func (r *mockExpenseRepo) CategoryTotals(ctx context.Context) ([]repositories.ExpenseCategory, error) {
	totals := map[string]float64{}
	for _, expense := range r.m.expenses {
		totals[expense.ItemName] += expense.Price
	}
	var categories []repositories.ExpenseCategory
	for name, total := range totals {
		categories = append(categories, repositories.ExpenseCategory{ItemName: name, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Total > categories[j].Total })
	return categories, nil
}

func (r *mockExpenseRepo) FindMatching(ctx context.Context, itemName string, price float64) (*models.Expense, error) {
	for _, expense := range r.m.expenses {
		if expense.ItemName == itemName && expense.Price == price {
			return expense, nil
		}
	}
	return nil, nil
}

func (r *mockExpenseRepo) Delete(ctx context.Context, id uint) error {
	for i, expense := range r.m.expenses {
		if expense.ID == id {
			r.m.expenses = append(r.m.expenses[:i], r.m.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

// ===== MEALS =====

type mockMealRepo struct{ m *mockRepository }

func (r *mockMealRepo) ListTimings(ctx context.Context) ([]*models.MealTiming, error) {
	timings := append([]*models.MealTiming(nil), r.m.timings...)
	sort.Slice(timings, func(i, j int) bool { return timings[i].MealName < timings[j].MealName })
	return timings, nil
}

func (r *mockMealRepo) UpsertTiming(ctx context.Context, timing *models.MealTiming) error {
	for _, existing := range r.m.timings {
		if existing.MealName == timing.MealName {
			existing.StartTime = timing.StartTime
			existing.EndTime = timing.EndTime
			existing.Notes = timing.Notes
			return nil
		}
	}
	timing.ID = r.m.id()
	r.m.timings = append(r.m.timings, timing)
	return nil
}

func (r *mockMealRepo) ListMenu(ctx context.Context) ([]*models.MealMenu, error) {
	menu := append([]*models.MealMenu(nil), r.m.menu...)
	sort.Slice(menu, func(i, j int) bool {
		if menu[i].DayOfWeek != menu[j].DayOfWeek {
			return menu[i].DayOfWeek < menu[j].DayOfWeek
		}
		return menu[i].MealName < menu[j].MealName
	})
	return menu, nil
}

func (r *mockMealRepo) UpsertMenuItem(ctx context.Context, item *models.MealMenu) error {
	for _, existing := range r.m.menu {
		if existing.DayOfWeek == item.DayOfWeek && existing.MealName == item.MealName {
			existing.MenuItems = item.MenuItems
			return nil
		}
	}
	item.ID = r.m.id()
	r.m.menu = append(r.m.menu, item)
	return nil
}

// ===== REGISTRATIONS =====

type mockRegistrationRepo struct{ m *mockRepository }

func (r *mockRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	registration.ID = r.m.id()
	if registration.SubmittedAt.IsZero() {
		registration.SubmittedAt = time.Now()
	}
	r.m.registrations = append(r.m.registrations, registration)
	return nil
}

func (r *mockRegistrationRepo) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	for _, registration := range r.m.registrations {
		if registration.ID == id {
			return registration, nil
		}
	}
	return nil, nil
}

func (r *mockRegistrationRepo) GetByEmail(ctx context.Context, email string) (*models.Registration, error) {
	for _, registration := range r.m.registrations {
		if registration.Email == email {
			return registration, nil
		}
	}
	return nil, nil
}

func (r *mockRegistrationRepo) List(ctx context.Context, filters repositories.RegistrationFilters) ([]*models.Registration, int64, error) {
	var matched []*models.Registration
	for _, registration := range r.m.registrations {
		if filters.Status != nil && registration.Status != *filters.Status {
			continue
		}
		matched = append(matched, registration)
	}

	total := int64(len(matched))
	start := (filters.Page - 1) * filters.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filters.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *mockRegistrationRepo) Update(ctx context.Context, registration *models.Registration) error {
	for i, existing := range r.m.registrations {
		if existing.ID == registration.ID {
			r.m.registrations[i] = registration
			return nil
		}
	}
	return nil
}

func (r *mockRegistrationRepo) Delete(ctx context.Context, id uint) error {
	for i, registration := range r.m.registrations {
		if registration.ID == id {
			r.m.registrations = append(r.m.registrations[:i], r.m.registrations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *mockRegistrationRepo) Counts(ctx context.Context, since time.Time) (*repositories.RegistrationCounts, error) {
	counts := &repositories.RegistrationCounts{}
	for _, registration := range r.m.registrations {
		counts.Total++
		switch registration.Status {
		case models.RegistrationPending:
			counts.Pending++
		case models.RegistrationContacted:
			counts.Contacted++
		case models.RegistrationApproved:
			counts.Approved++
		case models.RegistrationRejected:
			counts.Rejected++
		}
		if !registration.SubmittedAt.Before(since) {
			counts.Recent++
		}
	}
	return counts, nil
}
