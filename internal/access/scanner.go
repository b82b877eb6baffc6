package access

import (
	"context"

	"github.com/coachdesk/api/internal/models"
)

// adminScanPageSize is the fixed page size of the admin directory scan.
const adminScanPageSize = 50

// DirectoryPage is one page of a user-directory listing.
type DirectoryPage struct {
	Items []*models.User
	Total int
}

// DirectoryLister is the slice of the user directory the scanner needs.
// Pages are 1-based.
type DirectoryLister interface {
	ListByType(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error)
}

// AdminLister yields the set of administrator identities.
type AdminLister interface {
	ListAdminIdentities(ctx context.Context) (map[string]struct{}, error)
}

// AdminScanner pages through the user directory and collects every identity
// of type admin. Directory errors propagate to the caller unwrapped; callers
// treat them as fatal to the parent operation.
type AdminScanner struct {
	directory DirectoryLister
}

func NewAdminScanner(directory DirectoryLister) *AdminScanner {
	return &AdminScanner{directory: directory}
}

// ListAdminIdentities scans the full directory filtered to admins and returns
// a deduplicated identity set.
//
// The loop has two termination conditions: a page shorter than the page size,
// or the accumulated set reaching the reported total. Both are required: the
// total can drift under concurrent writes, and relying on it alone could spin
// forever against a stale count.
func (s *AdminScanner) ListAdminIdentities(ctx context.Context) (map[string]struct{}, error) {
	identities := make(map[string]struct{})

	for page := 1; ; page++ {
		result, err := s.directory.ListByType(ctx, string(models.RoleAdmin), adminScanPageSize, page)
		if err != nil {
			return nil, err
		}

		for _, user := range result.Items {
			identities[user.ID] = struct{}{}
		}

		if len(result.Items) < adminScanPageSize {
			break
		}
		if len(identities) >= result.Total {
			break
		}
	}

	return identities, nil
}
