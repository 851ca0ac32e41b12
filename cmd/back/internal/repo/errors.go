package repo

import "errors"

// ErrNotFound возвращается, когда записи с таким id нет
var ErrNotFound = errors.New("not found")
