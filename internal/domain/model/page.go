//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// PageInfo is the paging envelope the front-office service returns with every list.
type PageInfo struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Page is one page of results.
type Page[T any] struct {
	Content []T      `json:"content"`
	Page    PageInfo `json:"page"`
}

// PageRequest carries paging parameters through to the backend unchanged.
// Zero values are omitted from the query.
type PageRequest struct {
	Page int `json:"page,omitempty" validate:"gte=0"`
	Size int `json:"size,omitempty" validate:"gte=0,lte=500"`
}
