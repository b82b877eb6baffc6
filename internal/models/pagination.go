package models

// Page is a paginated repository result.
type Page[T any] struct {
	Items []*T
	Total int
	Page  int
	Limit int
}
