package access

import (
	"context"

	"github.com/coachdesk/api/internal/models"
)

// RecordRef carries the access-relevant fields of a fetched record. SubjectID
// and Visibility are empty for resources that do not have them.
type RecordRef struct {
	CreatedBy  string
	SubjectID  string
	Visibility models.Visibility
}

// RecordGate is the single-record counterpart of the scope resolver: given an
// actor and a fetched record, allow or deny a read or mutation.
type RecordGate struct {
	links *LinkGate
}

func NewRecordGate(links *LinkGate) *RecordGate {
	return &RecordGate{links: links}
}

// CanAccess evaluates the single-record rules in order:
//
//   - ADMIN bypasses everything.
//   - The record's author may read and mutate it, regardless of role.
//   - An athlete may read and mutate records they are the subject of.
//   - PUBLIC catalog records are readable by any authenticated role.
//   - A coach may read a subject-owned record only through a currently-valid
//     delegation link; a non-owning coach is never granted mutation.
//
// The returned error is an infrastructure failure from the link lookup, never
// an authorization outcome.
func (g *RecordGate) CanAccess(ctx context.Context, actor models.Actor, rec RecordRef, intent Intent) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}

	if rec.CreatedBy == actor.ID {
		return true, nil
	}

	if actor.Role == models.RoleAthlete && rec.SubjectID != "" && rec.SubjectID == actor.ID {
		return true, nil
	}

	if intent == IntentRead && rec.Visibility == models.VisibilityPublic {
		return true, nil
	}

	if intent == IntentRead && actor.Role == models.RoleCoach && rec.SubjectID != "" {
		return g.links.IsLinked(ctx, actor.ID, rec.SubjectID)
	}

	return false, nil
}
