package errs

import "errors"

var (
	// ErrIssueNotFound — нет issue с таким id у данного владельца.
	ErrIssueNotFound = errors.New("issue not found")
	// ErrNotOwner — source_id из кеша не совпадает с владельцем запроса.
	ErrNotOwner = errors.New("issue belongs to another source")
	// ErrLevelDowngrade — попытка понизить уровень эскалации.
	ErrLevelDowngrade = errors.New("cannot downgrade the issue level")
)
