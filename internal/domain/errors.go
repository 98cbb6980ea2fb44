// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Organization-related errors
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrOrganizationHasDependents = errors.New("organization has existing users, assets, or work orders")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserHasWorkOrders  = errors.New("user has associated work orders")

	// Asset-related errors
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetHasWorkOrders = errors.New("asset has associated work orders")

	// Work-order-related errors
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrAssetOrgMismatch  = errors.New("asset belongs to a different organization")

	// Upload-related errors
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileNotOnAsset     = errors.New("file not found in asset")
	ErrNoFilesUploaded    = errors.New("no files uploaded")
)
