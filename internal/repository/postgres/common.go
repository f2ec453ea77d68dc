package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"classifieds-hub/internal/repository"
)

var ErrNotFound = repository.ErrNotFound

func ensureAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a keyword is matched
// as a literal substring.
func escapeLike(keyword string) string {
	return likeEscaper.Replace(keyword)
}
