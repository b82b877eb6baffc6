package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeInviteSender struct {
	sent []string
	err  error
}

func (f *fakeInviteSender) SendLinkInvite(ctx context.Context, to, coachName string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestLinkService_CoachCreatesOwnLink(t *testing.T) {
	logger, _ := newCaptureLogger()
	emailer := &fakeInviteSender{}
	svc := NewLinkService(&MockLinkRepository{}, emailer, logger)

	link, err := svc.CreateLink(context.Background(), testCoach, CreateLinkInput{
		AthleteID:    "athlete-1",
		AthleteEmail: "athlete@example.com",
		CoachName:    "Coach One",
	})

	assert.NoError(t, err)
	assert.Equal(t, "coach-1", link.CoachID)
	assert.Equal(t, "coach-1", link.CreatedBy)
	assert.True(t, link.IsActive)
	assert.Equal(t, []string{"athlete@example.com"}, emailer.sent)
}

func TestLinkService_CoachCannotCreateForOtherCoach(t *testing.T) {
	logger, _ := newCaptureLogger()
	svc := NewLinkService(&MockLinkRepository{}, nil, logger)

	link, err := svc.CreateLink(context.Background(), testCoach, CreateLinkInput{
		CoachID:   "coach-2",
		AthleteID: "athlete-1",
	})

	assert.Nil(t, link)
	assert.Equal(t, models.ErrManageLinkForbidden, err)
}

func TestLinkService_AthleteCannotCreate(t *testing.T) {
	logger, _ := newCaptureLogger()
	svc := NewLinkService(&MockLinkRepository{}, nil, logger)

	link, err := svc.CreateLink(context.Background(), testAthlete, CreateLinkInput{AthleteID: "athlete-1"})

	assert.Nil(t, link)
	assert.Equal(t, models.ErrManageLinkForbidden, err)
}

func TestLinkService_InviteFailureDoesNotFailCreate(t *testing.T) {
	logger, capture := newCaptureLogger()
	svc := NewLinkService(&MockLinkRepository{}, &fakeInviteSender{err: errors.New("SES down")}, logger)

	link, err := svc.CreateLink(context.Background(), testCoach, CreateLinkInput{
		AthleteID:    "athlete-1",
		AthleteEmail: "athlete@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, link)
	assert.Empty(t, capture.errorMessages())
}

func TestLinkService_SetActivePermissions(t *testing.T) {
	repo := &MockLinkRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.CoachAthleteLink, error) {
			return &models.CoachAthleteLink{ID: id, CoachID: "coach-1", CreatedBy: "admin-1", IsActive: true}, nil
		},
		SetActiveFunc: func(ctx context.Context, id string, active bool) (*models.CoachAthleteLink, error) {
			return &models.CoachAthleteLink{ID: id, CoachID: "coach-1", IsActive: active}, nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewLinkService(repo, nil, logger)

	updated, err := svc.SetLinkActive(context.Background(), testCoach, "link-1", false)
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	otherCoach := models.Actor{ID: "coach-9", Role: models.RoleCoach}
	updated, err = svc.SetLinkActive(context.Background(), otherCoach, "link-1", false)
	assert.Nil(t, updated)
	assert.Equal(t, models.ErrManageLinkForbidden, err)
}

func TestLinkService_DeleteAdminOnly(t *testing.T) {
	logger, _ := newCaptureLogger()
	svc := NewLinkService(&MockLinkRepository{}, nil, logger)

	assert.Equal(t, models.ErrManageLinkForbidden, svc.DeleteLink(context.Background(), testCoach, "link-1"))
	assert.NoError(t, svc.DeleteLink(context.Background(), testAdmin, "link-1"))
}

func TestLinkService_ListForCoachScoped(t *testing.T) {
	repo := &MockLinkRepository{
		ListForCoachFunc: func(ctx context.Context, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error) {
			return &models.Page[models.CoachAthleteLink]{Total: 1, Page: page, Limit: limit}, nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewLinkService(repo, nil, logger)

	_, err := svc.ListLinksForCoach(context.Background(), testCoach, "coach-1", 1, 20)
	assert.NoError(t, err)

	_, err = svc.ListLinksForCoach(context.Background(), testCoach, "coach-2", 1, 20)
	assert.Equal(t, models.ErrManageLinkForbidden, err)

	_, err = svc.ListLinksForCoach(context.Background(), testAdmin, "coach-2", 1, 20)
	assert.NoError(t, err)
}
