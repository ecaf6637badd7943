package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDayNotFound   = errors.New("order day not found")
	ErrEntryNotFound = errors.New("entry not found")
)

// коды ошибок postgres, которые мы различаем
const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

var ErrConstraint = errors.New("constraint violation")

func isPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
