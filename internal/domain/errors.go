package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAssetRecord = errors.New("asset record is malformed")
	ErrEmptyOutput        = errors.New("output text is required")
)
