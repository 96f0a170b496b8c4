// Package pagination provides the token-based paging shapes shared by list
// endpoints.
package pagination

import "strconv"

// Pagination binds the common paging query parameters.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo reports the paging outcome embedded in list responses.
type PageInfo struct {
	HasMore       bool   `json:"has_more"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Normalize clamps the page size into [1, MaxPageSize], defaulting when
// unset.
func (p Pagination) Normalize() Pagination {
	if p.PageSize <= 0 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset decodes the page token as a row offset. Malformed tokens read as
// the first page.
func (p Pagination) Offset() int {
	if p.PageToken == "" {
		return 0
	}
	offset, err := strconv.Atoi(p.PageToken)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// BuildPageInfo derives PageInfo from a limit+1 fetch: fetched is the number
// of rows read, pageSize the requested page size, offset the decoded token.
func BuildPageInfo(fetched, pageSize, offset int) PageInfo {
	if fetched <= pageSize {
		return PageInfo{}
	}
	return PageInfo{
		HasMore:       true,
		NextPageToken: strconv.Itoa(offset + pageSize),
	}
}
