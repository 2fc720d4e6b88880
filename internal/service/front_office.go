package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
)

// FrontOfficeServiceOptions groups dependencies for FrontOfficeService.
type FrontOfficeServiceOptions struct {
	API ports.FrontOfficeAPI
}

// FrontOfficeService validates visitor and phone-call requests before they reach the API.
type FrontOfficeService struct {
	api      ports.FrontOfficeAPI
	validate *validator.Validate
}

// NewFrontOfficeService constructs a new FrontOfficeService.
func NewFrontOfficeService(opts FrontOfficeServiceOptions) *FrontOfficeService {
	if opts.API == nil {
		panic("front office API is required")
	}
	return &FrontOfficeService{api: opts.API, validate: newValidator()}
}

func requireID(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField(field, field+" is required")
	}
	return nil
}

func (s *FrontOfficeService) ListVisitors(
	ctx context.Context,
	opts model.VisitorListOptions,
) (model.Page[model.Visitor], error) {
	if err := validateRequest(s.validate, opts); err != nil {
		return model.Page[model.Visitor]{}, err
	}
	return s.api.ListVisitors(ctx, opts)
}

func (s *FrontOfficeService) GetVisitor(ctx context.Context, id string) (model.Visitor, error) {
	if err := requireID(id, "id"); err != nil {
		return model.Visitor{}, err
	}
	return s.api.GetVisitor(ctx, id)
}

func (s *FrontOfficeService) CreateVisitor(ctx context.Context, req model.CreateVisitorRequest) (model.Visitor, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return model.Visitor{}, err
	}
	return s.api.CreateVisitor(ctx, req)
}

// CheckoutVisitor closes a visit. The backend owns the rules about which visits can be closed.
func (s *FrontOfficeService) CheckoutVisitor(
	ctx context.Context,
	id string,
	req model.CheckoutVisitorRequest,
) (model.Visitor, error) {
	if err := requireID(id, "id"); err != nil {
		return model.Visitor{}, err
	}
	if err := validateRequest(s.validate, req); err != nil {
		return model.Visitor{}, err
	}
	return s.api.CheckoutVisitor(ctx, id, req)
}

func (s *FrontOfficeService) ListPhoneCalls(
	ctx context.Context,
	opts model.PhoneCallListOptions,
) (model.Page[model.PhoneCall], error) {
	if err := validateRequest(s.validate, opts); err != nil {
		return model.Page[model.PhoneCall]{}, err
	}
	return s.api.ListPhoneCalls(ctx, opts)
}

func (s *FrontOfficeService) GetPhoneCall(ctx context.Context, id string) (model.PhoneCall, error) {
	if err := requireID(id, "id"); err != nil {
		return model.PhoneCall{}, err
	}
	return s.api.GetPhoneCall(ctx, id)
}

func (s *FrontOfficeService) CreatePhoneCall(
	ctx context.Context,
	req model.CreatePhoneCallRequest,
) (model.PhoneCall, error) {
	req.CallType = model.CallType(strings.ToUpper(strings.TrimSpace(string(req.CallType))))
	if err := validateRequest(s.validate, req); err != nil {
		return model.PhoneCall{}, err
	}
	return s.api.CreatePhoneCall(ctx, req)
}
