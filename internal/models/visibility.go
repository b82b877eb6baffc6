package models

// Visibility controls cross-author read access on catalog resources
// (meal plans, programs, meal days). Personal resources (notes, tasks,
// reports) have no visibility flag and are scoped purely by ownership.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)
