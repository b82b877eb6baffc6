package access

import (
	"context"
	"errors"
	"testing"

	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestResolver(admins map[string]struct{}) *ScopeResolver {
	return NewScopeResolver(NewRelationshipIndex(&staticAdmins{ids: admins}))
}

var (
	adminActor   = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	coachActor   = models.Actor{ID: "coach-1", Role: models.RoleCoach}
	athleteActor = models.Actor{ID: "athlete-1", Role: models.RoleAthlete}
)

func TestScopeResolver_AdminPassthrough(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))
	req := ListRequest{
		CreatedBy:  "coach-7",
		SubjectID:  "athlete-9",
		Visibility: models.VisibilityPrivate,
	}

	filter, err := resolver.ResolveListFilter(context.Background(), adminActor, req, MealPlanPolicy)

	assert.NoError(t, err)
	assert.Equal(t, "coach-7", filter.CreatedBy)
	assert.Equal(t, "athlete-9", filter.SubjectID)
	assert.Equal(t, models.VisibilityPrivate, filter.Visibility)
	assert.Nil(t, filter.AccessibleFor)
}

func TestScopeResolver_CoachOwnCreatedBy(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedBy: "coach-1"}, MealPlanPolicy)

	assert.NoError(t, err)
	assert.Equal(t, "coach-1", filter.CreatedBy)
	// own records are not narrowed to PUBLIC
	assert.Empty(t, filter.Visibility)
}

func TestScopeResolver_CoachOtherCreatedByForcesPublic(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedBy: "admin-1"}, MealPlanPolicy)

	assert.NoError(t, err)
	assert.Equal(t, "admin-1", filter.CreatedBy)
	assert.Equal(t, models.VisibilityPublic, filter.Visibility)
}

func TestScopeResolver_CoachInaccessibleCreatedByForbidden(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedBy: "coach-2"}, MealPlanPolicy)

	assert.Nil(t, filter)
	assert.Equal(t, models.ErrListMealPlansForbidden, err)
}

func TestScopeResolver_CoachNoFilterExpandsAccessibleSet(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1", "admin-2"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{}, ProgramPolicy)

	assert.NoError(t, err)
	assert.Equal(t, []string{"admin-1", "admin-2", "coach-1"}, filter.CreatedByIn)
	// the no-filter branch never narrows to PUBLIC: a coach keeps their own
	// private drafts and sees admin content regardless of visibility
	assert.Empty(t, filter.Visibility)
}

func TestScopeResolver_CoachMealDayCompoundScope(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{}, MealDayPolicy)

	assert.NoError(t, err)
	assert.NotNil(t, filter.AccessibleFor)
	assert.Equal(t, "coach-1", filter.AccessibleFor.OwnerID)
	assert.Equal(t, []string{"admin-1"}, filter.AccessibleFor.CreatorIDs)
	assert.Empty(t, filter.CreatedByIn)
}

func TestScopeResolver_CoachMealDayCreatorSetForbidden(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedByIn: []string{"admin-1"}}, MealDayPolicy)

	assert.Nil(t, filter)
	assert.Equal(t, models.ErrListMealDaysForbidden, err)
}

func TestScopeResolver_CoachCreatorSetIntersected(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedByIn: []string{"admin-1", "coach-2", "coach-1"}}, MealPlanPolicy)

	assert.NoError(t, err)
	assert.Equal(t, []string{"admin-1", "coach-1"}, filter.CreatedByIn)
}

func TestScopeResolver_CoachCreatorSetAllInaccessible(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{CreatedByIn: []string{"coach-2", "coach-3"}}, MealPlanPolicy)

	assert.Nil(t, filter)
	assert.Equal(t, models.ErrListMealPlansForbidden, err)
}

func TestScopeResolver_AthleteCreatedByForbidden(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	for _, req := range []ListRequest{
		{CreatedBy: "coach-1"},
		{CreatedByIn: []string{"coach-1"}},
	} {
		filter, err := resolver.ResolveListFilter(context.Background(), athleteActor, req, MealPlanPolicy)
		assert.Nil(t, filter)
		assert.Equal(t, models.ErrListMealPlansForbidden, err)
	}
}

func TestScopeResolver_AthleteOtherSubjectForbidden(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), athleteActor,
		ListRequest{SubjectID: "athlete-2"}, ProgramPolicy)

	assert.Nil(t, filter)
	assert.Equal(t, models.ErrListProgramsForbidden, err)
}

func TestScopeResolver_AthleteForcedToSelf(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), athleteActor,
		ListRequest{}, ProgramPolicy)

	assert.NoError(t, err)
	assert.Equal(t, "athlete-1", filter.SubjectID)
	assert.Empty(t, filter.CreatedBy)
}

func TestScopeResolver_AthleteMealDaysPublicOnly(t *testing.T) {
	resolver := newTestResolver(adminSet("admin-1"))

	filter, err := resolver.ResolveListFilter(context.Background(), athleteActor,
		ListRequest{}, MealDayPolicy)

	assert.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, filter.Visibility)
	assert.Empty(t, filter.SubjectID)
}

func TestScopeResolver_DirectoryErrorPropagatesRaw(t *testing.T) {
	dbErr := errors.New("DB Error")
	resolver := NewScopeResolver(NewRelationshipIndex(&staticAdmins{err: dbErr}))

	filter, err := resolver.ResolveListFilter(context.Background(), coachActor,
		ListRequest{}, ProgramPolicy)

	assert.Nil(t, filter)
	assert.Equal(t, dbErr, err)
}
