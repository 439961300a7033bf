// Package access holds the built-in access checker.
package access

import "context"

// Permissive allows every actor to reach every project. Deployments that
// need real authorization swap in their own ports.AccessChecker.
type Permissive struct{}

func (Permissive) VerifyProjectAccess(ctx context.Context, actorID string, projectID int64) error {
	return nil
}
