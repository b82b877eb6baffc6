package access

import "github.com/coachdesk/api/internal/models"

// Policy is the per-resource configuration the resolver and the usecases
// branch on, replacing the per-resource if/else trees the role rules would
// otherwise duplicate.
type Policy struct {
	Kind string

	// HasVisibility marks catalog resources carrying a PUBLIC/PRIVATE flag.
	HasVisibility bool

	// HasSubject marks resources that are about an athlete (userId), possibly
	// distinct from their author.
	HasSubject bool

	// AllowCreatorSet permits coaches to filter by a creator set
	// (createdByIn). Where false the request is rejected outright.
	AllowCreatorSet bool

	// CompoundScope selects the accessible-for predicate for the coach
	// no-filter branch: (owner = self) OR (createdBy IN otherAccessibleIds),
	// instead of a plain createdBy IN accessible set.
	CompoundScope bool

	// Denial is the flavor this resource's usecases surface denials with.
	Denial DenialMode

	// ListForbidden is the resource-specific condition raised for disallowed
	// list requests.
	ListForbidden error
}

var (
	MealPlanPolicy = Policy{
		Kind:            "meal_plans",
		HasVisibility:   true,
		HasSubject:      true,
		AllowCreatorSet: true,
		Denial:          DenyAsForbidden,
		ListForbidden:   models.ErrListMealPlansForbidden,
	}

	ProgramPolicy = Policy{
		Kind:            "programs",
		HasVisibility:   true,
		HasSubject:      true,
		AllowCreatorSet: true,
		Denial:          DenyAsForbidden,
		ListForbidden:   models.ErrListProgramsForbidden,
	}

	// Meal days reject coach creator-set filtering and scope the no-filter
	// branch with the compound accessible-for predicate.
	MealDayPolicy = Policy{
		Kind:          "meal_days",
		HasVisibility: true,
		CompoundScope: true,
		Denial:        DenyAsForbidden,
		ListForbidden: models.ErrListMealDaysForbidden,
	}

	NotePolicy = Policy{
		Kind:          "notes",
		HasSubject:    true,
		Denial:        DenyAsForbidden,
		ListForbidden: models.ErrListNotesForbidden,
	}

	TaskPolicy = Policy{
		Kind:          "tasks",
		HasSubject:    true,
		Denial:        DenyAsForbidden,
		ListForbidden: models.ErrListTasksForbidden,
	}
)
