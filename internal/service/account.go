package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/target/frontdesk-console/internal/domain/model"
	"github.com/target/frontdesk-console/internal/ports"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	API ports.AccountAPI
}

// AccountService handles sign-up and password recovery. None of it changes the current session.
type AccountService struct {
	api      ports.AccountAPI
	validate *validator.Validate
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.API == nil {
		panic("account API is required")
	}
	return &AccountService{api: opts.API, validate: newValidator()}
}

func (s *AccountService) Register(ctx context.Context, req model.SignUpRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	return s.api.Register(ctx, req)
}

func (s *AccountService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	return s.api.ForgotPassword(ctx, req)
}

func (s *AccountService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	return s.api.ResetPassword(ctx, req)
}
