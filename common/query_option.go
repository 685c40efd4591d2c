package common

import "strings"

const defaultLimit = 25

// QueryOption carries paging, sorting and search parameters for list queries.
type QueryOption struct {
	Limit   int64  `query:"limit"`
	Page    int64  `query:"page"`
	Search  string `query:"search"`
	OrderBy string `query:"order_by"`
}

func (r *QueryOption) GetLimit() int64 {
	if r == nil || r.Limit <= 0 {
		return defaultLimit
	}

	return r.Limit
}

func (r *QueryOption) GetSearch() string {
	if r == nil {
		return ""
	}
	return r.Search
}

func (r *QueryOption) GetPage() int64 {
	if r == nil || r.Page <= 0 {
		return 1
	}

	return r.Page
}

func (r *QueryOption) GetOffset() int64 {
	return r.GetLimit() * (r.GetPage() - 1)
}

// GetOrders splits OrderBy into sort keys. Dots are rewritten to "__" so
// nested fields survive the split; "-id" is the default.
func (r *QueryOption) GetOrders() []string {
	if r == nil || r.OrderBy == "" {
		return []string{"-id"}
	}

	return strings.Split(strings.ReplaceAll(r.OrderBy, ".", "__"), ",")
}
