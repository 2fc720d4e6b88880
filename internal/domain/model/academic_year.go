//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// AcademicYear is a school year; exactly one is expected to be current.
type AcademicYear struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsCurrent bool   `json:"isCurrent"`
}

// CreateAcademicYearRequest represents parameters to create an AcademicYear.
type CreateAcademicYearRequest struct {
	Name      string `json:"name"      validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"   validate:"required"`
	IsCurrent bool   `json:"isCurrent"`
}

// UpdateAcademicYearRequest is a partial update; nil fields are left unchanged.
type UpdateAcademicYearRequest struct {
	Name      *string `json:"name,omitempty"      validate:"omitnil,min=1"`
	StartDate *string `json:"startDate,omitempty" validate:"omitnil,min=1"`
	EndDate   *string `json:"endDate,omitempty"   validate:"omitnil,min=1"`
	IsCurrent *bool   `json:"isCurrent,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateAcademicYearRequest.
func (r *UpdateAcademicYearRequest) HasUpdates() bool {
	return r.Name != nil || r.StartDate != nil || r.EndDate != nil || r.IsCurrent != nil
}

// CurrentAcademicYear returns the year flagged current, if any.
func CurrentAcademicYear(years []AcademicYear) (AcademicYear, bool) {
	for _, y := range years {
		if y.IsCurrent {
			return y, true
		}
	}
	return AcademicYear{}, false
}
