package apperr

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку запуска. Любая ошибка фатальна для запуска.
type Kind string

const (
	Configuration Kind = "configuration"
	Transport     Kind = "transport"
	Inference     Kind = "inference"
)

type Error struct {
	Kind Kind
	Op   string // "getUpdates", "analyze photo 2", ...
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New создаёт ошибку без вложенной причины.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Wrap возвращает nil, если err == nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf возвращает "" для ошибок, не созданных этим пакетом.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
