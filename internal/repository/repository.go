package repository

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// SortField is one ordering term for a list query. Field must be one of the
// sortable fields the implementation whitelists; unknown fields are ignored.
type SortField struct {
	Field string
	Desc  bool
}
