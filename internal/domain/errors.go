package domain

import "fmt"

// FetchError indica que la fuente de partidos no respondió o devolvió algo ilegible.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indica un timestamp que no es ISO-8601 válido.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransformError indica que no se pudo derivar el resumen de un partido,
// por ejemplo cuando no hay exactamente un spread negativo.
type TransformError struct {
	Game   string
	Field  string
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %s: %s", e.Game, e.Field, e.Reason)
}
