package access

import (
	"context"
	"testing"
	"time"

	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestRecordGate(links []*models.CoachAthleteLink) *RecordGate {
	gate := NewLinkGate(&mockLinkReader{
		ActiveLinksForCoachFunc: func(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error) {
			return links, nil
		},
	})
	return NewRecordGate(gate)
}

func TestRecordGate_AdminBypass(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-9", SubjectID: "athlete-9", Visibility: models.VisibilityPrivate}

	for _, intent := range []Intent{IntentRead, IntentMutate} {
		ok, err := gate.CanAccess(context.Background(), adminActor, rec, intent)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRecordGate_OwnerCanReadAndMutate(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-1", Visibility: models.VisibilityPrivate}

	for _, intent := range []Intent{IntentRead, IntentMutate} {
		ok, err := gate.CanAccess(context.Background(), coachActor, rec, intent)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRecordGate_AthleteOwnsSubjectRecord(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-1", SubjectID: "athlete-1"}

	for _, intent := range []Intent{IntentRead, IntentMutate} {
		ok, err := gate.CanAccess(context.Background(), athleteActor, rec, intent)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRecordGate_PrivateRecordOfOtherCoach(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-2", Visibility: models.VisibilityPrivate}

	ok, err := gate.CanAccess(context.Background(), coachActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordGate_PublicReadableNotMutable(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-2", Visibility: models.VisibilityPublic}

	ok, err := gate.CanAccess(context.Background(), coachActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.CanAccess(context.Background(), coachActor, rec, IntentMutate)
	assert.NoError(t, err)
	assert.False(t, ok)

	// PUBLIC read is role-independent
	ok, err = gate.CanAccess(context.Background(), athleteActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRecordGate_LinkedCoachReadsSubjectRecord(t *testing.T) {
	gate := newTestRecordGate([]*models.CoachAthleteLink{{
		CoachID:   "coach-1",
		AthleteID: "athlete-1",
		IsActive:  true,
	}})
	rec := RecordRef{CreatedBy: "athlete-1", SubjectID: "athlete-1"}

	ok, err := gate.CanAccess(context.Background(), coachActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.True(t, ok)

	// mutation is never granted to a non-owning coach, linked or not
	ok, err = gate.CanAccess(context.Background(), coachActor, rec, IntentMutate)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordGate_UnlinkedCoachDenied(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "athlete-1", SubjectID: "athlete-1"}

	ok, err := gate.CanAccess(context.Background(), coachActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordGate_ExpiredLinkDenied(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1)
	gate := newTestRecordGate([]*models.CoachAthleteLink{{
		CoachID:   "coach-1",
		AthleteID: "athlete-1",
		EndDate:   &past,
		IsActive:  true,
	}})
	rec := RecordRef{CreatedBy: "athlete-1", SubjectID: "athlete-1"}

	ok, err := gate.CanAccess(context.Background(), coachActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordGate_AthleteCannotReadOtherSubjectPrivate(t *testing.T) {
	gate := newTestRecordGate(nil)
	rec := RecordRef{CreatedBy: "coach-2", SubjectID: "athlete-2", Visibility: models.VisibilityPrivate}

	ok, err := gate.CanAccess(context.Background(), athleteActor, rec, IntentRead)
	assert.NoError(t, err)
	assert.False(t, ok)
}
