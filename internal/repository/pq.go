package repository

import (
	stderrors "errors"

	"github.com/lib/pq"
)

// isPqCode reports whether err is a Postgres error with the given SQLSTATE.
func isPqCode(err error, code string) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == code
}
