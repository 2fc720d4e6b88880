package apiclient

import (
	"context"
	"net/http"

	"github.com/target/frontdesk-console/internal/domain/model"
)

// ListAcademicYears returns every academic year the backend knows.
func (c *Client) ListAcademicYears(ctx context.Context) ([]model.AcademicYear, error) {
	var years []model.AcademicYear
	err := c.academic.call(ctx, request{
		method: http.MethodGet,
		path:   "/academic-years",
	}, &years, "Unable to load academic years")
	return years, err
}

// CreateAcademicYear adds a year. Creating a current year drops the cached current-year lookup.
func (c *Client) CreateAcademicYear(ctx context.Context, req model.CreateAcademicYearRequest) (model.AcademicYear, error) {
	var year model.AcademicYear
	err := c.academic.call(ctx, request{
		method: http.MethodPost,
		path:   "/academic-years",
		body:   req,
	}, &year, "Unable to create academic year")
	if err == nil && year.IsCurrent {
		c.forgetAcademicYear()
	}
	return year, err
}

// UpdateAcademicYear patches a year and drops the cached current-year lookup.
func (c *Client) UpdateAcademicYear(
	ctx context.Context,
	id string,
	req model.UpdateAcademicYearRequest,
) (model.AcademicYear, error) {
	var year model.AcademicYear
	err := c.academic.call(ctx, request{
		method: http.MethodPatch,
		path:   "/academic-years/" + escapeID(id),
		body:   req,
	}, &year, "Unable to update academic year")
	if err == nil {
		c.forgetAcademicYear()
	}
	return year, err
}

// DeleteAcademicYear removes a year and drops the cached current-year lookup.
func (c *Client) DeleteAcademicYear(ctx context.Context, id string) error {
	err := c.academic.call(ctx, request{
		method: http.MethodDelete,
		path:   "/academic-years/" + escapeID(id),
	}, nil, "Unable to delete academic year")
	if err == nil {
		c.forgetAcademicYear()
	}
	return err
}

// MakeCurrentAcademicYear flags the year as current; the backend unflags the previous one.
func (c *Client) MakeCurrentAcademicYear(ctx context.Context, id string) (model.AcademicYear, error) {
	current := true
	return c.UpdateAcademicYear(ctx, id, model.UpdateAcademicYearRequest{IsCurrent: &current})
}
