package argument

import (
	"errors"
	"fmt"
)

// Kinds of declaration errors. They are matched with errors.Is.
var (
	ErrNameCollision      = errors.New("name collision")
	ErrInvalidShortAlias  = errors.New("invalid short alias")
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

// ConstructionError is returned while a parser tree is being declared.
// Nothing is parsed once one of these occurs.
type ConstructionError struct {
	Kind error
	Name string
	Msg  string
}

func (e *ConstructionError) Error() string {
	return e.Msg
}

func (e *ConstructionError) Unwrap() error {
	return e.Kind
}

func constructionErr(kind error, name, format string, args ...any) *ConstructionError {
	return &ConstructionError{Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)}
}

// NewConstructionError lets other declaring packages report with the same kinds.
func NewConstructionError(kind error, name, format string, args ...any) *ConstructionError {
	return constructionErr(kind, name, format, args...)
}

// CountMismatchError is a failed count reference between two list values.
type CountMismatchError struct {
	Name    string
	Sibling string
	Got     int
	Want    int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s for %d %s provided, expected for %d", e.Name, e.Got, e.Sibling, e.Want)
}

// Exit ends a parse pass with a status code and an optional message. It is
// produced by callback and version arguments and is never a failure by
// itself; the reporter decides what to do with it.
type Exit struct {
	Code   int
	Output string
}

func (e *Exit) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return fmt.Sprintf("exit status %d", e.Code)
}
