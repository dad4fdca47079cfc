package interfaces

import (
	"context"

	"graphbox/pkg/models"
)

// Lister is the remote listing surface the tree enumerator walks. The two
// call shapes mirror the service's own constraints: the root can be fetched
// with its children expanded in one call, but every level below the root must
// be addressed by an explicit root-relative path.
type Lister interface {
	// RootWithChildren returns the root container and its immediate children.
	RootWithChildren(ctx context.Context, driveID string) (*models.Entry, []models.Entry, error)

	// ChildrenAtPath returns the children of a non-root path.
	ChildrenAtPath(ctx context.Context, driveID, path string) ([]models.Entry, error)
}

// Mailer sends a plain-text message as the signed-in user.
type Mailer interface {
	SendMail(ctx context.Context, to []string, subject, body string) error
}
