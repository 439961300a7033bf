package domain

import "errors"

// Sentinel errors shared across layers. Repositories translate driver
// errors into them; the API layer maps them to transport codes.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrSlugTaken              = errors.New("slug already in use")
	ErrDuplicateKey           = errors.New("translation key already exists")
	ErrSpaceMismatch          = errors.New("branches belong to different spaces")
	ErrProtectedBranch        = errors.New("default branch cannot be deleted")
	ErrLanguageNotDeclared    = errors.New("language not declared for space")
	ErrConcurrentModification = errors.New("target branch changed, rerun diff and retry")
	ErrAccessDenied           = errors.New("access denied")
	ErrUnknownFormat          = errors.New("unknown file format")
)
