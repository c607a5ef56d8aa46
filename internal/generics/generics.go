package generics

/*
Page represents a paginated result set with metadata.

Fields:
- Page: Current page number (1-indexed)
- Size: Maximum number of records per page
- TotalPages: Total number of pages based on TotalResults and Size, at least 1
- TotalResults: Total number of records matching the query
- Content: Slice containing the actual records for the current page
*/
type Page[T any] struct {
	Page         int `json:"page"`
	Size         int `json:"size"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
	Content      []T `json:"content"`
}
