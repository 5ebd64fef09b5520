package member

import "context"

// DirectoryRepository exposes read-only access to the member/couple directory.
// The directory itself is maintained elsewhere; the calendar only consumes it.
type DirectoryRepository interface {
	GetMemberByID(ctx context.Context, id int64) (*Member, error)
	ListActiveMembers(ctx context.Context) ([]Member, error)
	ListActiveCouples(ctx context.Context) ([]Couple, error)
}
