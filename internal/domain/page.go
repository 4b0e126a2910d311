package domain

import "fmt"

// PageRequest is 1-indexed: skip = (Page-1) * PageSize.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}

	if p.PageSize < 1 {
		return fmt.Errorf("pageSize must be >= 1, got %d", p.PageSize)
	}

	return nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageRequest) Limit() int {
	return p.PageSize
}

// TotalPages is ceil(totalCount / pageSize); zero rows means zero pages.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}
