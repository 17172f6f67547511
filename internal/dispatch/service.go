package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/towline/towline/internal/platform/httpx"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context, req ListJobsRequest) ([]Job, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", httpx.ErrNotFound, id)
		}
		return nil, err
	}
	return job, nil
}

func (s *Service) Create(ctx context.Context, req CreateJobRequest) (*Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	job := Job{
		ID:              uuid.NewString(),
		Date:            req.Date,
		TimeReceived:    req.TimeReceived,
		OBNumber:        req.OBNumber,
		CustomerName:    req.CustomerName,
		ContactOnScene:  req.ContactOnScene,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		VehicleDetails:  req.VehicleDetails,
		TowClass:        req.TowClass,
		VehicleUse:      req.VehicleUse,
		Notes:           req.Notes,
	}
	return s.repo.Create(ctx, job)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	job, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", httpx.ErrNotFound, id)
		}
		return nil, err
	}
	return job, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: job %s", httpx.ErrNotFound, id)
		}
		return err
	}
	return nil
}

// MarkInvoiced records on the job that an invoice was generated. The
// export path calls this best-effort after a successful download.
func (s *Service) MarkInvoiced(ctx context.Context, id, invoiceNumber string) error {
	generated := true
	_, err := s.repo.Update(ctx, id, UpdateJobRequest{
		InvoiceGenerated: &generated,
		InvoiceNumber:    &invoiceNumber,
	})
	if err != nil {
		s.logger.Warn("mark job invoiced", slog.String("job", id), slog.Any("error", err))
	}
	return err
}
