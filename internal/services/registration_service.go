package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type registrationService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRegistrationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) RegistrationService {
	return &registrationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Submit stores a public application. One registration per email.
func (s *registrationService) Submit(ctx context.Context, req *RegistrationCreateRequest) (uint, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return 0, errs
	}

	existing, err := s.repo.Registration().GetByEmail(ctx, req.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to check for existing registration: %w", err)
	}
	if existing != nil {
		return 0, ErrRegistrationDuplicate
	}

	registration := &models.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		EmergencyContact:     req.EmergencyContact,
		EmergencyContactName: req.EmergencyContactName,
		University:           req.University,
		Course:               req.Course,
		YearOfStudy:          req.YearOfStudy,
		ExpectedDuration:     req.ExpectedDuration,
		SpecialRequirements:  req.SpecialRequirements,
		Status:               models.RegistrationPending,
	}
	if err := s.repo.Registration().Create(ctx, registration); err != nil {
		return 0, fmt.Errorf("failed to submit registration: %w", err)
	}

	event := events.NewEvent(events.EventRegistrationSubmitted, events.RegistrationStatusChangedEvent{
		RegistrationID: registration.ID,
		Email:          registration.Email,
		ToStatus:       string(models.RegistrationPending),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish registration event", "error", err, "registration_id", registration.ID)
	}

	s.logger.Info("Registration submitted", "registration_id", registration.ID)
	return registration.ID, nil
}

func (s *registrationService) List(ctx context.Context, req RegistrationListRequest) (*RegistrationListResponse, error) {
	page, perPage := clampPagination(req.Page, req.PerPage)

	filters := repositories.RegistrationFilters{Page: page, PerPage: perPage}
	if req.Status != "" && req.Status != "all" {
		status := models.RegistrationStatus(req.Status)
		if !status.IsValid() {
			return nil, validator.ValidationErrors{{
				Field:   "status",
				Message: "must be one of: pending, contacted, approved, rejected",
				Value:   req.Status,
			}}
		}
		filters.Status = &status
	}

	registrations, total, err := s.repo.Registration().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	responses := make([]*RegistrationResponse, 0, len(registrations))
	for _, reg := range registrations {
		resp := &RegistrationResponse{
			ID:                   reg.ID,
			Name:                 reg.Name,
			Email:                reg.Email,
			Phone:                reg.Phone,
			Address:              reg.Address,
			EmergencyContact:     reg.EmergencyContact,
			EmergencyContactName: reg.EmergencyContactName,
			University:           reg.University,
			Course:               reg.Course,
			YearOfStudy:          reg.YearOfStudy,
			ExpectedDuration:     reg.ExpectedDuration,
			SpecialRequirements:  reg.SpecialRequirements,
			Status:               reg.Status,
			SubmittedAt:          reg.SubmittedAt.Format("2006-01-02 15:04:05"),
			AdminNotes:           reg.AdminNotes,
		}
		if reg.ContactedAt != nil {
			contactedAt := reg.ContactedAt.Format("2006-01-02 15:04:05")
			resp.ContactedAt = &contactedAt
		}
		if reg.ContactedBy != nil {
			admin, err := s.repo.Admin().GetByID(ctx, *reg.ContactedBy)
			if err != nil {
				return nil, err
			}
			if admin != nil {
				resp.ContactedBy = &admin.Name
			}
		}
		responses = append(responses, resp)
	}

	return &RegistrationListResponse{
		Registrations: responses,
		Meta:          NewListMeta(page, perPage, total),
	}, nil
}

// UpdateStatus moves a registration through its lifecycle. Terminal
// statuses are frozen; moving to contacted stamps who did it and when.
func (s *registrationService) UpdateStatus(ctx context.Context, id uint, req *RegistrationUpdateRequest, adminID uint) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	registration, err := s.repo.Registration().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load registration %d: %w", id, err)
	}
	if registration == nil {
		return ErrRegistrationNotFound
	}

	fromStatus := registration.Status
	if !fromStatus.CanTransitionTo(req.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, fromStatus, req.Status)
	}

	registration.Status = req.Status
	if req.Status == models.RegistrationContacted && fromStatus != models.RegistrationContacted {
		now := time.Now().UTC()
		registration.ContactedAt = &now
		registration.ContactedBy = &adminID
	}
	if req.AdminNotes != nil {
		registration.AdminNotes = req.AdminNotes
	}

	if err := s.repo.Registration().Update(ctx, registration); err != nil {
		return fmt.Errorf("failed to update registration %d: %w", id, err)
	}

	if fromStatus != req.Status {
		event := events.NewEvent(events.EventRegistrationStatusChanged, events.RegistrationStatusChangedEvent{
			RegistrationID: registration.ID,
			Email:          registration.Email,
			FromStatus:     string(fromStatus),
			ToStatus:       string(req.Status),
			ChangedBy:      adminID,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish registration event", "error", err, "registration_id", id)
		}
	}

	s.logger.Info("Registration updated", "registration_id", id, "status", req.Status)
	return nil
}

func (s *registrationService) Delete(ctx context.Context, id uint) error {
	registration, err := s.repo.Registration().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load registration %d: %w", id, err)
	}
	if registration == nil {
		return ErrRegistrationNotFound
	}

	if err := s.repo.Registration().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}
	return nil
}

func (s *registrationService) Stats(ctx context.Context) (*RegistrationStats, error) {
	since := time.Now().UTC().Add(-repositories.RecentWindow)
	counts, err := s.repo.Registration().Counts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute registration stats: %w", err)
	}

	return &RegistrationStats{
		TotalRegistrations: counts.Total,
		PendingCount:       counts.Pending,
		ContactedCount:     counts.Contacted,
		ApprovedCount:      counts.Approved,
		RejectedCount:      counts.Rejected,
		RecentCount:        counts.Recent,
	}, nil
}
