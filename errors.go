package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
)

// ErrSyntax matches (via errors.Is) every parse failure caused by
// malformed rule text.
var ErrSyntax = errors.New("rule syntax error")

// ErrHierarchy matches (via errors.Is) every parse failure caused by a
// rule appearing in a structurally invalid position, e.g. @import after
// body content. The rule text itself may be perfectly well-formed.
var ErrHierarchy = errors.New("rule hierarchy error")

// ParseErrorKind classifies a single-rule parse failure.
type ParseErrorKind uint8

const (
	SyntaxError ParseErrorKind = iota
	HierarchyError
)

// ParseError is the error type returned by Parse. A parse failure aborts
// only the rule at hand; it is never fatal to the wider engine, which
// will typically skip the rule and continue, per CSS's liberal error
// recovery philosophy.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case HierarchyError:
		if e.Detail == "" {
			return ErrHierarchy.Error()
		}
		return fmt.Sprintf("%s: %s", ErrHierarchy, e.Detail)
	}
	if e.Detail == "" {
		return ErrSyntax.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSyntax, e.Detail)
}

// Is lets errors.Is match a ParseError against the ErrSyntax and
// ErrHierarchy sentinels.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == SyntaxError
	case ErrHierarchy:
		return e.Kind == HierarchyError
	}
	return false
}

func syntaxErr(format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: SyntaxError, Detail: fmt.Sprintf(format, args...)}
}

func hierarchyErr(format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: HierarchyError, Detail: fmt.Sprintf(format, args...)}
}

// MutateErrorKind classifies rule-list mutation failures. It is a
// superset of the parse kinds: IndexSize and InvalidState originate in
// the rule-list container layer, which shares this taxonomy.
type MutateErrorKind uint8

const (
	MutateSyntax MutateErrorKind = iota
	MutateIndexSize
	MutateHierarchyRequest
	MutateInvalidState
)

// MutateError is the error surfaced to the CSSOM binding for insertRule
// and friends. The binding maps the kinds onto DOM exceptions:
// SyntaxError, IndexSizeError, HierarchyRequestError, InvalidStateError.
type MutateError struct {
	Kind   MutateErrorKind
	Detail string
}

func (e *MutateError) Error() string {
	switch e.Kind {
	case MutateIndexSize:
		return "index size error"
	case MutateHierarchyRequest:
		return "hierarchy request error"
	case MutateInvalidState:
		return "invalid state error"
	}
	if e.Detail == "" {
		return "syntax error"
	}
	return "syntax error: " + e.Detail
}

// AsMutateError converts a single-rule parse failure into the rule-list
// mutation taxonomy, losslessly: Syntax stays Syntax, Hierarchy becomes
// HierarchyRequest. Any other error is treated as a syntax failure.
func AsMutateError(err error) *MutateError {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Kind == HierarchyError {
			return &MutateError{Kind: MutateHierarchyRequest, Detail: pe.Detail}
		}
		return &MutateError{Kind: MutateSyntax, Detail: pe.Detail}
	}
	return &MutateError{Kind: MutateSyntax, Detail: err.Error()}
}
