package apiclient

import (
	"context"
	"net/http"

	"github.com/target/frontdesk-console/internal/domain/model"
)

// ListVisitors returns one page of the visitor log.
func (c *Client) ListVisitors(ctx context.Context, opts model.VisitorListOptions) (model.Page[model.Visitor], error) {
	q := pageQuery(opts.PageRequest)
	setIfPresent(q, "search", opts.Search)
	setIfPresent(q, "purpose", opts.Purpose)

	var page model.Page[model.Visitor]
	err := c.frontOffice(ctx, request{
		method: http.MethodGet,
		path:   "/front-office/visitors",
		query:  q,
	}, &page, "Unable to load visitors")
	return page, err
}

// GetVisitor loads a single visitor entry.
func (c *Client) GetVisitor(ctx context.Context, id string) (model.Visitor, error) {
	var v model.Visitor
	err := c.frontOffice(ctx, request{
		method: http.MethodGet,
		path:   "/front-office/visitors/" + escapeID(id),
	}, &v, "Unable to load visitor")
	return v, err
}

// CreateVisitor records a check-in.
func (c *Client) CreateVisitor(ctx context.Context, req model.CreateVisitorRequest) (model.Visitor, error) {
	var v model.Visitor
	err := c.frontOffice(ctx, request{
		method: http.MethodPost,
		path:   "/front-office/visitors",
		body:   req,
	}, &v, "Unable to add visitor")
	return v, err
}

// CheckoutVisitor closes a visit.
func (c *Client) CheckoutVisitor(ctx context.Context, id string, req model.CheckoutVisitorRequest) (model.Visitor, error) {
	var v model.Visitor
	err := c.frontOffice(ctx, request{
		method: http.MethodPatch,
		path:   "/front-office/visitors/" + escapeID(id) + "/checkout",
		body:   req,
	}, &v, "Unable to check out visitor")
	return v, err
}
