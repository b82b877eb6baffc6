package access

import (
	"context"
	"sort"

	"github.com/coachdesk/api/internal/models"
)

// ListRequest is what the caller asked for, verbatim from the transport
// layer. Empty fields mean "not requested".
type ListRequest struct {
	CreatedBy   string
	CreatedByIn []string
	SubjectID   string
	Visibility  models.Visibility
}

// AccessibleFor is the compound predicate for meal-day style scoping:
// (owner = OwnerID) OR (createdBy IN CreatorIDs).
type AccessibleFor struct {
	OwnerID    string
	CreatorIDs []string
}

// ListFilter is the concrete, narrowed filter handed to the persistence
// layer. At most one of CreatedBy / CreatedByIn / AccessibleFor is set.
type ListFilter struct {
	CreatedBy     string
	CreatedByIn   []string
	SubjectID     string
	Visibility    models.Visibility
	AccessibleFor *AccessibleFor
}

// ScopeResolver narrows a requested list filter to what the actor may see, or
// rejects the request with the resource's ListForbidden condition. Any other
// error returned is an infrastructure failure from the admin-identity scan
// and must be wrapped by the calling usecase.
type ScopeResolver struct {
	index *RelationshipIndex
}

func NewScopeResolver(index *RelationshipIndex) *ScopeResolver {
	return &ScopeResolver{index: index}
}

func (r *ScopeResolver) ResolveListFilter(ctx context.Context, actor models.Actor, req ListRequest, pol Policy) (*ListFilter, error) {
	if actor.IsAdmin() {
		return &ListFilter{
			CreatedBy:   req.CreatedBy,
			CreatedByIn: req.CreatedByIn,
			SubjectID:   req.SubjectID,
			Visibility:  req.Visibility,
		}, nil
	}

	switch actor.Role {
	case models.RoleCoach:
		return r.resolveForCoach(ctx, actor, req, pol)
	case models.RoleAthlete:
		return resolveForAthlete(actor, req, pol)
	default:
		return nil, pol.ListForbidden
	}
}

func (r *ScopeResolver) resolveForCoach(ctx context.Context, actor models.Actor, req ListRequest, pol Policy) (*ListFilter, error) {
	if len(req.CreatedByIn) > 0 {
		if !pol.AllowCreatorSet {
			return nil, pol.ListForbidden
		}

		accessible, err := r.index.AccessibleCreatorIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}

		allowed := make([]string, 0, len(req.CreatedByIn))
		for _, id := range req.CreatedByIn {
			if _, ok := accessible[id]; ok {
				allowed = append(allowed, id)
			}
		}
		if len(allowed) == 0 {
			return nil, pol.ListForbidden
		}
		sort.Strings(allowed)

		return &ListFilter{CreatedByIn: allowed, SubjectID: req.SubjectID}, nil
	}

	if req.CreatedBy != "" {
		if req.CreatedBy == actor.ID {
			// Own records unrestricted, private work-in-progress included.
			return &ListFilter{CreatedBy: actor.ID, SubjectID: req.SubjectID}, nil
		}

		accessible, err := r.index.AccessibleCreatorIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if _, ok := accessible[req.CreatedBy]; !ok {
			return nil, pol.ListForbidden
		}

		// Another creator's content: only the published subset is visible.
		filter := &ListFilter{CreatedBy: req.CreatedBy, SubjectID: req.SubjectID}
		if pol.HasVisibility {
			filter.Visibility = models.VisibilityPublic
		}
		return filter, nil
	}

	accessible, err := r.index.AccessibleCreatorIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if pol.CompoundScope {
		others := make([]string, 0, len(accessible))
		for id := range accessible {
			if id != actor.ID {
				others = append(others, id)
			}
		}
		sort.Strings(others)

		return &ListFilter{
			AccessibleFor: &AccessibleFor{OwnerID: actor.ID, CreatorIDs: others},
			SubjectID:     req.SubjectID,
		}, nil
	}

	creators := make([]string, 0, len(accessible))
	for id := range accessible {
		creators = append(creators, id)
	}
	sort.Strings(creators)

	return &ListFilter{CreatedByIn: creators, SubjectID: req.SubjectID}, nil
}

func resolveForAthlete(actor models.Actor, req ListRequest, pol Policy) (*ListFilter, error) {
	// Athletes may never filter by author.
	if req.CreatedBy != "" || len(req.CreatedByIn) > 0 {
		return nil, pol.ListForbidden
	}
	if req.SubjectID != "" && req.SubjectID != actor.ID {
		return nil, pol.ListForbidden
	}

	if pol.HasSubject {
		return &ListFilter{SubjectID: actor.ID}, nil
	}
	if pol.HasVisibility {
		// Subject-less catalog content: published records only.
		return &ListFilter{Visibility: models.VisibilityPublic}, nil
	}
	return &ListFilter{CreatedBy: actor.ID}, nil
}
