package models

import "math"

const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// PageRequest is a zero-based page index plus a page size.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest pairs a zero-based page index with a page size.
func NewPageRequest(page, size int) PageRequest {
	return PageRequest{Page: page, Size: size}
}

// Offset is the number of rows skipped before the page. Validate rejects
// requests whose offset does not fit in an int.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Validate reports the out-of-range fields; nil means the request is usable.
func (p PageRequest) Validate() []FieldError {
	var fields []FieldError
	if p.Page < 0 {
		fields = append(fields, FieldError{Field: "page", Message: "must be greater than or equal to 0"})
	}
	if p.Size <= 0 {
		fields = append(fields, FieldError{Field: "size", Message: "must be greater than 0"})
	} else if p.Page > math.MaxInt/p.Size {
		fields = append(fields, FieldError{Field: "page", Message: "is too large for the page size"})
	}
	return fields
}

// Page is one slice of an ordered result set plus its paging metadata.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// NewPage builds the page metadata for content fetched with req out of a
// result set of total elements.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

// MapPage converts the content of p with fn and keeps its metadata.
func MapPage[S, T any](p Page[S], fn func(S) T) Page[T] {
	content := make([]T, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(content),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(content) == 0,
	}
}
