package access

import (
	"context"

	"github.com/coachdesk/api/internal/models"
)

// mockDirectory implements DirectoryLister for testing
type mockDirectory struct {
	ListByTypeFunc func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error)
	calls          int
}

func (m *mockDirectory) ListByType(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
	m.calls++
	return m.ListByTypeFunc(ctx, userType, limit, page)
}

// mockLinkReader implements LinkReader for testing
type mockLinkReader struct {
	ActiveLinksForCoachFunc func(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error)
}

func (m *mockLinkReader) ActiveLinksForCoach(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error) {
	if m.ActiveLinksForCoachFunc != nil {
		return m.ActiveLinksForCoachFunc(ctx, coachID)
	}
	return []*models.CoachAthleteLink{}, nil
}

// staticAdmins implements AdminLister with a fixed identity set
type staticAdmins struct {
	ids map[string]struct{}
	err error
}

func (s *staticAdmins) ListAdminIdentities(ctx context.Context) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

func adminSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func directoryUsers(ids ...string) []*models.User {
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, &models.User{ID: id, Type: string(models.RoleAdmin)})
	}
	return users
}
