package filter

import "net/url"

import "github.com/siahsang/news/internal/validator"

// CommentQuery is a validated listing of one article's comments, newest first.
type CommentQuery struct {
	ArticleID  int64
	Pagination Pagination
}

func ParseCommentQuery(articleID int64, query url.Values) (CommentQuery, error) {
	v := validator.New()
	q := CommentQuery{ArticleID: articleID, Pagination: parsePagination(query, v)}
	if err := v.Err(); err != nil {
		return CommentQuery{}, err
	}
	return q, nil
}

func (q CommentQuery) SQL() (string, []any) {
	b := &queryBuilder{}
	b.write(`
		SELECT comment_id, votes, created_at, author, body, article_id
		FROM comments
		WHERE article_id = `)
	b.bind(q.ArticleID)
	b.write(`
		ORDER BY created_at DESC, comment_id DESC`)

	appendPagination(b, q.Pagination)

	return b.build()
}
