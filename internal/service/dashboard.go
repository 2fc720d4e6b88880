package service

import (
	"context"
	"fmt"

	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"golang.org/x/sync/errgroup"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	FrontOffice  *FrontOfficeService
	AcademicYear *AcademicYearService
}

// DashboardService assembles the landing-page summary.
type DashboardService struct {
	frontOffice  *FrontOfficeService
	academicYear *AcademicYearService
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.FrontOffice == nil || opts.AcademicYear == nil {
		panic("dashboard requires front office and academic year services")
	}
	return &DashboardService{frontOffice: opts.FrontOffice, academicYear: opts.AcademicYear}
}

// DashboardSummary is the landing-page overview.
type DashboardSummary struct {
	Visitors            int                 `json:"visitors"`
	PhoneCalls          int                 `json:"phone_calls"`
	CurrentAcademicYear *model.AcademicYear `json:"current_academic_year,omitempty"`
}

// Summary fetches the counts and the current year concurrently.
// A missing current year is not an error; any other failure cancels the rest.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	probe := model.PageRequest{Size: 1}

	g.Go(func() error {
		page, err := s.frontOffice.ListVisitors(gctx, model.VisitorListOptions{PageRequest: probe})
		if err != nil {
			return fmt.Errorf("count visitors: %w", err)
		}
		out.Visitors = page.Page.TotalElements
		return nil
	})
	g.Go(func() error {
		page, err := s.frontOffice.ListPhoneCalls(gctx, model.PhoneCallListOptions{PageRequest: probe})
		if err != nil {
			return fmt.Errorf("count phone calls: %w", err)
		}
		out.PhoneCalls = page.Page.TotalElements
		return nil
	})
	g.Go(func() error {
		year, err := s.academicYear.Current(gctx)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("current academic year: %w", err)
		}
		out.CurrentAcademicYear = &year
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}
	return out, nil
}
