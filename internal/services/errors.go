package services

import "errors"

// Sentinel errors surfaced to handlers for status mapping.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateName   = errors.New("student with this name already exists")

	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomOutOfRange = errors.New("room ID must be between 1 and 18")
	ErrRoomFull       = errors.New("room is at full capacity")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrSalaryNotFound   = errors.New("salary record not found")
	ErrSalaryDuplicate  = errors.New("salary already paid for this month")

	ErrExpenseNotFound = errors.New("expense not found")

	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrRegistrationDuplicate = errors.New("a registration with this email already exists")
	ErrInvalidTransition     = errors.New("invalid registration status transition")
)
