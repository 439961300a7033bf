package ports

import "context"

// AccessChecker guards project-scoped operations. The service ships with a
// permissive implementation; deployments embedding this module plug in
// their own. A denial is reported as domain.ErrAccessDenied.
type AccessChecker interface {
	VerifyProjectAccess(ctx context.Context, actorID string, projectID int64) error
}
