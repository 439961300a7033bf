package ports

import (
	"context"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// Store bundles the repositories behind one transactional boundary.
// WithinTx runs fn against a store whose repositories share a single
// transaction: it commits when fn returns nil and rolls back otherwise.
// Nested calls join the enclosing transaction.
type Store interface {
	Projects() ProjectRepository
	Spaces() SpaceRepository
	Branches() BranchRepository
	Keys() KeyRepository
	Translations() TranslationRepository
	Baselines() BaselineRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type SpaceRepository interface {
	Create(ctx context.Context, s *domain.Space) error
	Get(ctx context.Context, id int64) (*domain.Space, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Space, error)
	Delete(ctx context.Context, id int64) error
	AddLanguage(ctx context.Context, sl *domain.SpaceLanguage) error
	ListLanguages(ctx context.Context, spaceID int64) ([]*domain.SpaceLanguage, error)
	RemoveLanguage(ctx context.Context, spaceID int64, language string) error
	// LanguageAllowed reports whether language may be written in the space.
	// A space with no declared languages accepts any.
	LanguageAllowed(ctx context.Context, spaceID int64, language string) (bool, error)
}

type BranchRepository interface {
	Create(ctx context.Context, b *domain.Branch) error
	Get(ctx context.Context, id int64) (*domain.Branch, error)
	GetDefault(ctx context.Context, spaceID int64) (*domain.Branch, error)
	ListBySpace(ctx context.Context, spaceID int64) ([]*domain.Branch, error)
	CountKeys(ctx context.Context, branchID int64) (int64, error)
	// CopyContent duplicates every key and translation of src into dst,
	// resetting approval to pending. Returns the number of copied keys.
	CopyContent(ctx context.Context, srcID, dstID int64) (int64, error)
	Touch(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type KeyRepository interface {
	Create(ctx context.Context, k *domain.TranslationKey) error
	Get(ctx context.Context, id int64) (*domain.TranslationKey, error)
	GetByRef(ctx context.Context, branchID int64, ref domain.KeyRef) (*domain.TranslationKey, error)
	ListByBranch(ctx context.Context, branchID int64) ([]*domain.TranslationKey, error)
	Update(ctx context.Context, k *domain.TranslationKey) error
	Delete(ctx context.Context, id int64) error
	DeleteByRef(ctx context.Context, branchID int64, ref domain.KeyRef) error
}

type TranslationRepository interface {
	Upsert(ctx context.Context, t *domain.Translation) error
	Get(ctx context.Context, keyID int64, language string) (*domain.Translation, error)
	ListByKey(ctx context.Context, keyID int64) ([]*domain.Translation, error)
	ListByBranch(ctx context.Context, branchID int64) ([]*domain.BranchTranslation, error)
	SetStatus(ctx context.Context, keyID int64, language, status string) error
	Delete(ctx context.Context, keyID int64, language string) error
}

// BaselineRepository records the divergence point of a copied branch: the
// values it shared with its source branch at creation time. Diff uses it to
// tell fast-forward changes from true conflicts, merge advances it.
type BaselineRepository interface {
	Capture(ctx context.Context, branchID, fromBranchID int64) error
	ListByBranch(ctx context.Context, branchID int64) (map[domain.KeyRef]map[string]string, error)
	ReplaceKey(ctx context.Context, branchID int64, ref domain.KeyRef, values map[string]string) error
	DeleteKey(ctx context.Context, branchID int64, ref domain.KeyRef) error
}
