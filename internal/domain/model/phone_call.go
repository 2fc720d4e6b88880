//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// CallType is the direction of a logged phone call.
type CallType string

const (
	CallTypeIncoming CallType = "INCOMING"
	CallTypeOutgoing CallType = "OUTGOING"
)

// PhoneCall is one entry in the front-office phone-call log.
type PhoneCall struct {
	ID               string   `json:"id"`
	CallerName       string   `json:"callerName"`
	PhoneNumber      string   `json:"phoneNumber"`
	CallDate         string   `json:"callDate"`
	CallType         CallType `json:"callType"`
	CallDuration     string   `json:"callDuration,omitempty"`
	Description      string   `json:"description,omitempty"`
	NextFollowUpDate string   `json:"nextFollowUpDate,omitempty"`
	Status           string   `json:"status"`
	Remarks          string   `json:"remarks,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
}

// PhoneCallListOptions filters the phone-call log.
type PhoneCallListOptions struct {
	PageRequest
	Search   string   `json:"search,omitempty"`
	CallType CallType `json:"callType,omitempty" validate:"omitempty,oneof=INCOMING OUTGOING"`
	FromDate string   `json:"fromDate,omitempty"`
	ToDate   string   `json:"toDate,omitempty"`
	Sort     string   `json:"sort,omitempty"`
}

// CreatePhoneCallRequest logs a phone call.
type CreatePhoneCallRequest struct {
	CallerName       string   `json:"callerName"                 validate:"required"`
	PhoneNumber      string   `json:"phoneNumber"                validate:"required"`
	CallDate         string   `json:"callDate"                   validate:"required"`
	CallType         CallType `json:"callType"                   validate:"required,oneof=INCOMING OUTGOING"`
	CallDuration     string   `json:"callDuration,omitempty"`
	Description      string   `json:"description,omitempty"`
	NextFollowUpDate string   `json:"nextFollowUpDate,omitempty"`
	Remarks          string   `json:"remarks,omitempty"`
}
