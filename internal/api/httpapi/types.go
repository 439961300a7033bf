package httpapi

import "github.com/VinniZP/lingx-sub016/internal/domain"

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the machine-readable error code.
	Code string `json:"code,omitempty"`

	// Details provides additional error context.
	Details string `json:"details,omitempty"`
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type createSpaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type addLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type createBranchRequest struct {
	SpaceID        int64  `json:"space_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"omitempty,slug"`
	SourceBranchID int64  `json:"source_branch_id" binding:"required"`
}

// branchResponse decorates a branch with its key count.
type branchResponse struct {
	*domain.Branch
	KeyCount int64 `json:"key_count"`
}

type keyRefRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name" binding:"required"`
}

type resolutionRequest struct {
	Key    keyRefRequest `json:"key" binding:"required"`
	Chosen string        `json:"chosen" binding:"required,oneof=source target delete"`
}

type mergeRequest struct {
	TargetBranchID int64               `json:"target_branch_id" binding:"required"`
	Resolutions    []resolutionRequest `json:"resolutions"`
}

type createKeyRequest struct {
	Namespace   string `json:"namespace"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateKeyRequest struct {
	Name        *string `json:"name"`
	Namespace   *string `json:"namespace"`
	Description *string `json:"description"`
}

// translationValue is one language entry of a key. Absence of a language
// means untranslated; an empty Value is a real, deliberately empty string.
type translationValue struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// keyResponse decorates a key with its values per language.
type keyResponse struct {
	*domain.TranslationKey
	Translations map[string]translationValue `json:"translations"`
}

// putTranslationRequest carries the value as a pointer so an explicit
// empty string still binds.
type putTranslationRequest struct {
	Value *string `json:"value" binding:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved"`
}

type importRequest struct {
	Format   string `json:"format" binding:"required"`
	Language string `json:"language" binding:"required"`
	// Content is the base64-encoded file body.
	Content string `json:"content" binding:"required"`
}
