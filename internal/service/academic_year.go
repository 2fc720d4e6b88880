package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
)

// AcademicYearServiceOptions groups dependencies for AcademicYearService.
type AcademicYearServiceOptions struct {
	API ports.AcademicYearAPI
}

// AcademicYearService manages academic-year settings.
type AcademicYearService struct {
	api      ports.AcademicYearAPI
	validate *validator.Validate
}

// NewAcademicYearService constructs a new AcademicYearService.
func NewAcademicYearService(opts AcademicYearServiceOptions) *AcademicYearService {
	if opts.API == nil {
		panic("academic year API is required")
	}
	return &AcademicYearService{api: opts.API, validate: newValidator()}
}

func (s *AcademicYearService) List(ctx context.Context) ([]model.AcademicYear, error) {
	return s.api.ListAcademicYears(ctx)
}

// Current returns the year the backend flags as current.
func (s *AcademicYearService) Current(ctx context.Context) (model.AcademicYear, error) {
	years, err := s.api.ListAcademicYears(ctx)
	if err != nil {
		return model.AcademicYear{}, err
	}
	year, ok := model.CurrentAcademicYear(years)
	if !ok {
		return model.AcademicYear{}, apperrors.NotFound("No current academic year is set")
	}
	return year, nil
}

func (s *AcademicYearService) Create(
	ctx context.Context,
	req model.CreateAcademicYearRequest,
) (model.AcademicYear, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return model.AcademicYear{}, err
	}
	return s.api.CreateAcademicYear(ctx, req)
}

func (s *AcademicYearService) Update(
	ctx context.Context,
	id string,
	req model.UpdateAcademicYearRequest,
) (model.AcademicYear, error) {
	if err := requireID(id, "id"); err != nil {
		return model.AcademicYear{}, err
	}
	if !req.HasUpdates() {
		return model.AcademicYear{}, apperrors.Validation("at least one field must be updated")
	}
	if err := validateRequest(s.validate, req); err != nil {
		return model.AcademicYear{}, err
	}
	return s.api.UpdateAcademicYear(ctx, id, req)
}

func (s *AcademicYearService) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "id"); err != nil {
		return err
	}
	return s.api.DeleteAcademicYear(ctx, id)
}

func (s *AcademicYearService) MakeCurrent(ctx context.Context, id string) (model.AcademicYear, error) {
	if err := requireID(id, "id"); err != nil {
		return model.AcademicYear{}, err
	}
	return s.api.MakeCurrentAcademicYear(ctx, id)
}
