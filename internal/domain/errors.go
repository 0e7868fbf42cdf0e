package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrPipelineNotFound   = errors.New("pipeline not found")
	ErrStageNotFound      = errors.New("pipeline stage not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrNameRequired       = errors.New("name is required")
	ErrContentRequired    = errors.New("content is required")
	ErrEmailInvalid       = errors.New("email is invalid")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrWorkspaceNameShort = errors.New("workspace name is too short")
	ErrSkuRequired        = errors.New("sku is required")
	ErrPriceNegative      = errors.New("price must not be negative")
)

// Validation constants
const (
	MinWorkspaceNameLength = 3
	MinPasswordLength      = 6
)
