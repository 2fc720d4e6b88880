package apiclient

import (
	"context"
	"net/http"

	"github.com/target/frontdesk-console/internal/domain/model"
)

// ListPhoneCalls returns one page of the phone-call log.
func (c *Client) ListPhoneCalls(ctx context.Context, opts model.PhoneCallListOptions) (model.Page[model.PhoneCall], error) {
	q := pageQuery(opts.PageRequest)
	setIfPresent(q, "search", opts.Search)
	setIfPresent(q, "callType", string(opts.CallType))
	setIfPresent(q, "fromDate", opts.FromDate)
	setIfPresent(q, "toDate", opts.ToDate)
	setIfPresent(q, "sort", opts.Sort)

	var page model.Page[model.PhoneCall]
	err := c.frontOffice(ctx, request{
		method: http.MethodGet,
		path:   "/front-office/phone-calls",
		query:  q,
	}, &page, "Unable to load phone calls")
	return page, err
}

// GetPhoneCall loads a single phone-call entry.
func (c *Client) GetPhoneCall(ctx context.Context, id string) (model.PhoneCall, error) {
	var call model.PhoneCall
	err := c.frontOffice(ctx, request{
		method: http.MethodGet,
		path:   "/front-office/phone-calls/" + escapeID(id),
	}, &call, "Unable to load phone call")
	return call, err
}

// CreatePhoneCall logs a call.
func (c *Client) CreatePhoneCall(ctx context.Context, req model.CreatePhoneCallRequest) (model.PhoneCall, error) {
	var call model.PhoneCall
	err := c.frontOffice(ctx, request{
		method: http.MethodPost,
		path:   "/front-office/phone-calls",
		body:   req,
	}, &call, "Unable to log phone call")
	return call, err
}
