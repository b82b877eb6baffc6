package access

import "context"

// RelationshipIndex answers which creator identities a coach may read content
// from: the coach themselves plus every administrator. Admins act as global
// content providers (shared templates), so their records are readable by any
// coach. This is a read allow-list only; it grants no write access to
// admin-authored records.
type RelationshipIndex struct {
	admins AdminLister
}

func NewRelationshipIndex(admins AdminLister) *RelationshipIndex {
	return &RelationshipIndex{admins: admins}
}

// AccessibleCreatorIDs returns {coachID} ∪ admin identities. The admin set is
// recomputed per call; errors from the scan propagate unwrapped.
func (r *RelationshipIndex) AccessibleCreatorIDs(ctx context.Context, coachID string) (map[string]struct{}, error) {
	admins, err := r.admins.ListAdminIdentities(ctx)
	if err != nil {
		return nil, err
	}

	accessible := make(map[string]struct{}, len(admins)+1)
	for id := range admins {
		accessible[id] = struct{}{}
	}
	accessible[coachID] = struct{}{}

	return accessible, nil
}
