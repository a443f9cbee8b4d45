package filter

import (
	"net/url"
	"strings"

	"github.com/siahsang/news/internal/utils/stringutils"
	"github.com/siahsang/news/internal/validator"
)

const (
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
	MaxOffset    int64 = 10_000_000
)

// SortColumn is a column an article listing may be ordered by.
// Its SQL identifier comes from a fixed table, never from the request.
type SortColumn int

const (
	SortByCreatedAt SortColumn = iota
	SortByArticleID
	SortByTitle
	SortByTopic
	SortByAuthor
	SortByBody
	SortByVotes
	SortByArticleImgURL
)

var sortColumnIdentifiers = [...]string{
	SortByCreatedAt:     "created_at",
	SortByArticleID:     "article_id",
	SortByTitle:         "title",
	SortByTopic:         "topic",
	SortByAuthor:        "author",
	SortByBody:          "body",
	SortByVotes:         "votes",
	SortByArticleImgURL: "article_img_url",
}

// ParseSortColumn looks name up in the allow-list.
func ParseSortColumn(name string) (SortColumn, bool) {
	for col, ident := range sortColumnIdentifiers {
		if ident == name {
			return SortColumn(col), true
		}
	}
	return SortByCreatedAt, false
}

func (c SortColumn) String() string {
	if c < 0 || int(c) >= len(sortColumnIdentifiers) {
		return sortColumnIdentifiers[SortByCreatedAt]
	}
	return sortColumnIdentifiers[c]
}

type Order int

const (
	OrderDesc Order = iota
	OrderAsc
)

// ParseOrder accepts asc or desc in any case.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(s) {
	case "asc":
		return OrderAsc, true
	case "desc":
		return OrderDesc, true
	default:
		return OrderDesc, false
	}
}

func (o Order) String() string {
	if o == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// Pagination selects one page of a listing. A zero Limit means no limit.
type Pagination struct {
	Limit int64
	Page  int64
}

func (p Pagination) Offset() int64 {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Paginated reports whether a LIMIT clause applies.
func (p Pagination) Paginated() bool {
	return p.Limit > 0
}

// parsePagination reads the limit and p query parameters.
// Non-positive values fall back to their defaults; non-numeric values are rejected.
// A page needs an explicit page size, and the page may not start past MaxOffset.
func parsePagination(query url.Values, v *validator.Validator) Pagination {
	var p Pagination

	limit, hasLimit, err := stringutils.ParseOptionalInt(query.Get("limit"))
	switch {
	case err != nil:
		v.AddError("limit", "must be a number")
	case hasLimit && limit < 1:
		p.Limit = DefaultLimit
	case hasLimit && limit > MaxLimit:
		v.AddError("limit", "must be a maximum of 100")
	case hasLimit:
		p.Limit = limit
	}

	page, hasPage, err := stringutils.ParseOptionalInt(query.Get("p"))
	switch {
	case err != nil:
		v.AddError("p", "must be a number")
	case hasPage && !hasLimit:
		v.AddError("p", "requires limit")
	case hasPage && page < 1:
		p.Page = 1
	case hasPage && p.Limit > 0 && page-1 > MaxOffset/p.Limit:
		v.AddError("p", "is too large")
	case hasPage:
		p.Page = page
	}

	if p.Limit > 0 && p.Page == 0 {
		p.Page = 1
	}

	return p
}

// appendPagination adds LIMIT/OFFSET as bound parameters.
func appendPagination(b *queryBuilder, p Pagination) {
	if !p.Paginated() {
		return
	}
	b.write(" LIMIT ")
	b.bind(p.Limit)
	b.write(" OFFSET ")
	b.bind(p.Offset())
}
