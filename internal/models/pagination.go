package models

// PaginationParams represents page-based pagination parameters.
type PaginationParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Sort     string `json:"sort,omitempty"`
	Order    string `json:"order,omitempty"`
}

// Normalize clamps pagination parameters to sane bounds.
func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset returns the row offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationMeta describes the position of a page within a result set.
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// PaginatedResponse wraps a page of items with pagination metadata.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPaginatedResponse builds a paginated response from a page of items
// and the total row count.
func NewPaginatedResponse[T any](items []T, params PaginationParams, total int64) *PaginatedResponse[T] {
	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize != 0 {
		totalPages++
	}
	return &PaginatedResponse[T]{
		Data: items,
		Pagination: PaginationMeta{
			CurrentPage:  params.Page,
			ItemsPerPage: params.PageSize,
			TotalItems:   total,
			TotalPages:   totalPages,
			HasNext:      params.Page < totalPages,
			HasPrev:      params.Page > 1,
		},
	}
}
