package filter

import (
	"net/url"

	"github.com/siahsang/news/internal/utils/stringutils"
	"github.com/siahsang/news/internal/validator"
)

// ArticleQuery is a validated article listing request.
type ArticleQuery struct {
	Topic      string
	SortBy     SortColumn
	Order      Order
	Pagination Pagination
}

// ParseArticleQuery validates topic, sort_by, order, limit and p.
func ParseArticleQuery(query url.Values) (ArticleQuery, error) {
	v := validator.New()
	q := ArticleQuery{SortBy: SortByCreatedAt, Order: OrderDesc}

	if sortBy := query.Get("sort_by"); sortBy != "" {
		col, ok := ParseSortColumn(sortBy)
		v.Check(ok, "sort_by", "is not a sortable column")
		q.SortBy = col
	}

	if order := query.Get("order"); order != "" {
		o, ok := ParseOrder(order)
		v.Check(ok, "order", "must be asc or desc")
		q.Order = o
	}

	if topic := query.Get("topic"); topic != "" {
		v.Check(!stringutils.LooksNumeric(topic), "topic", "must be a topic slug")
		q.Topic = topic
	}

	q.Pagination = parsePagination(query, v)

	if err := v.Err(); err != nil {
		return ArticleQuery{}, err
	}
	return q, nil
}

// SQL builds the listing statement. Each row carries comment_count and the
// total_count of articles matching the topic filter before pagination.
func (q ArticleQuery) SQL() (string, []any) {
	b := &queryBuilder{}
	b.write(`
		SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url,
			COUNT(c.comment_id) AS comment_count,
			COUNT(*) OVER () AS total_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id`)

	if q.Topic != "" {
		b.write(`
		WHERE a.topic = `)
		b.bind(q.Topic)
	}

	b.write(`
		GROUP BY a.article_id
		ORDER BY a.` + q.SortBy.String() + " " + q.Order.String() +
		", a.article_id " + q.Order.String())

	appendPagination(b, q.Pagination)

	return b.build()
}
