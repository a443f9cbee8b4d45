package filter

import (
	"strconv"
	"strings"
)

// queryBuilder accumulates SQL text and its positional arguments.
// Values only ever enter the statement through bind.
type queryBuilder struct {
	sql  strings.Builder
	args []any
}

func (b *queryBuilder) write(s string) {
	b.sql.WriteString(s)
}

func (b *queryBuilder) bind(value any) {
	b.args = append(b.args, value)
	b.sql.WriteString("$")
	b.sql.WriteString(strconv.Itoa(len(b.args)))
}

func (b *queryBuilder) build() (string, []any) {
	return b.sql.String(), b.args
}
