//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Visitor is one entry in the front-office visitor log.
type Visitor struct {
	ID              string `json:"id"`
	VisitorName     string `json:"visitorName"`
	PhoneNumber     string `json:"phoneNumber"`
	Purpose         string `json:"purpose"`
	NumberOfPersons int    `json:"numberOfPersons"`
	IDProofType     string `json:"idProofType,omitempty"`
	IDProofNumber   string `json:"idProofNumber,omitempty"`
	CheckInTime     string `json:"checkInTime"`
	CheckOutTime    string `json:"checkOutTime,omitempty"`
	Remarks         string `json:"remarks,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

// VisitorListOptions filters the visitor log. Values are passed through as query parameters.
type VisitorListOptions struct {
	PageRequest
	Search  string `json:"search,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// CreateVisitorRequest records a new visitor check-in.
type CreateVisitorRequest struct {
	VisitorName     string `json:"visitorName"             validate:"required"`
	PhoneNumber     string `json:"phoneNumber"             validate:"required"`
	Purpose         string `json:"purpose"                 validate:"required"`
	NumberOfPersons int    `json:"numberOfPersons"         validate:"gte=1"`
	IDProofType     string `json:"idProofType,omitempty"`
	IDProofNumber   string `json:"idProofNumber,omitempty"`
	CheckInTime     string `json:"checkInTime"             validate:"required"`
	Remarks         string `json:"remarks,omitempty"`
}

// CheckoutVisitorRequest closes a visit.
type CheckoutVisitorRequest struct {
	CheckOutTime string `json:"checkOutTime"      validate:"required"`
	Remarks      string `json:"remarks,omitempty"`
}
