package repositories

import (
	"testing"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyListFilterEmpty(t *testing.T) {
	q := &queryFilter{}
	applyListFilter(q, &access.ListFilter{})

	assert.Equal(t, "", q.where())
	assert.Empty(t, q.args)
}

func TestApplyListFilterCreatedBy(t *testing.T) {
	q := &queryFilter{}
	applyListFilter(q, &access.ListFilter{CreatedBy: "coach-1"})

	assert.Equal(t, " WHERE created_by = $1", q.where())
	assert.Equal(t, []any{"coach-1"}, q.args)
}

func TestApplyListFilterCreatorSetWithVisibility(t *testing.T) {
	q := &queryFilter{}
	applyListFilter(q, &access.ListFilter{
		CreatedByIn: []string{"admin-1", "coach-1"},
		Visibility:  models.VisibilityPublic,
	})

	assert.Equal(t, " WHERE created_by = ANY($1) AND visibility = $2", q.where())
	assert.Equal(t, []any{[]string{"admin-1", "coach-1"}, "PUBLIC"}, q.args)
}

func TestApplyListFilterCompoundOwnership(t *testing.T) {
	q := &queryFilter{}
	applyListFilter(q, &access.ListFilter{
		AccessibleFor: &access.AccessibleFor{
			OwnerID:    "coach-1",
			CreatorIDs: []string{"admin-1", "admin-2"},
		},
	})

	assert.Equal(t, " WHERE (owner_id = $1 OR created_by = ANY($2))", q.where())
	assert.Equal(t, []any{"coach-1", []string{"admin-1", "admin-2"}}, q.args)
}

func TestApplyListFilterSubjectPlusCreatedBy(t *testing.T) {
	q := &queryFilter{}
	applyListFilter(q, &access.ListFilter{CreatedBy: "coach-1", SubjectID: "athlete-1"})

	assert.Equal(t, " WHERE created_by = $1 AND user_id = $2", q.where())
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 20))
	assert.Equal(t, 20, pageOffset(2, 20))
	assert.Equal(t, 0, pageOffset(0, 20))
}
