package access

import (
	"context"
	"time"

	"github.com/coachdesk/api/internal/models"
)

// LinkReader is the slice of the link repository the gate needs.
type LinkReader interface {
	ActiveLinksForCoach(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error)
}

// LinkGate answers whether a currently-valid delegation link exists between a
// coach and an athlete. Used for single-subject reads (daily reports, KPI
// summaries) only; list scoping of catalog resources goes through ownership,
// not per-athlete linkage.
type LinkGate struct {
	links LinkReader
	now   func() time.Time
}

func NewLinkGate(links LinkReader) *LinkGate {
	return &LinkGate{links: links, now: time.Now}
}

// IsLinked reports whether coachID holds an active link to athleteID whose
// date window contains the current instant. Validity is evaluated against the
// wall clock on every call.
func (g *LinkGate) IsLinked(ctx context.Context, coachID, athleteID string) (bool, error) {
	links, err := g.links.ActiveLinksForCoach(ctx, coachID)
	if err != nil {
		return false, err
	}

	now := g.now()
	for _, link := range links {
		if link.AthleteID == athleteID && link.IsCurrentlyValid(now) {
			return true, nil
		}
	}

	return false, nil
}
