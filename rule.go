package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cssrules/lock"
)

// Rule is a single CSS rule of any kind.
//
// The set of implementations is closed: exactly the twelve variant types
// below, each a thin handle to a reference-shared, lock-guarded payload.
// Variants are cheap to copy; copying a variant shares the payload cell.
// Dispatch over rules is done by exhaustive type switch in TypeOf,
// DeepClone, CSSText and SizeOfChildren.
//
// No Charset variant exists here: CSSCharsetRule has been removed from
// CSSOM (https://drafts.csswg.org/cssom/#changes-from-5-december-2013).
type Rule interface {
	isRule()
}

// The twelve rule kinds. Payload types are defined in kinds.go and
// keyframes.go.

// Namespace is an @namespace rule handle.
type Namespace struct {
	Rule *lock.Locked[NamespaceRule]
}

// Import is an @import rule handle.
type Import struct {
	Rule *lock.Locked[ImportRule]
}

// Style is a qualified style rule handle (selectors plus declarations).
type Style struct {
	Rule *lock.Locked[StyleRule]
}

// Media is an @media conditional group rule handle.
type Media struct {
	Rule *lock.Locked[MediaRule]
}

// FontFace is an @font-face rule handle.
type FontFace struct {
	Rule *lock.Locked[FontFaceRule]
}

// FontFeatureValues is an @font-feature-values rule handle.
type FontFeatureValues struct {
	Rule *lock.Locked[FontFeatureValuesRule]
}

// CounterStyle is an @counter-style rule handle.
type CounterStyle struct {
	Rule *lock.Locked[CounterStyleRule]
}

// Viewport is an @viewport rule handle.
type Viewport struct {
	Rule *lock.Locked[ViewportRule]
}

// Keyframes is an @keyframes rule handle.
type Keyframes struct {
	Rule *lock.Locked[KeyframesRule]
}

// Supports is an @supports conditional group rule handle.
type Supports struct {
	Rule *lock.Locked[SupportsRule]
}

// Page is an @page rule handle.
type Page struct {
	Rule *lock.Locked[PageRule]
}

// Document is an @document / @-moz-document rule handle.
type Document struct {
	Rule *lock.Locked[DocumentRule]
}

func (Namespace) isRule()         {}
func (Import) isRule()            {}
func (Style) isRule()             {}
func (Media) isRule()             {}
func (FontFace) isRule()          {}
func (FontFeatureValues) isRule() {}
func (CounterStyle) isRule()      {}
func (Viewport) isRule()          {}
func (Keyframes) isRule()         {}
func (Supports) isRule()          {}
func (Page) isRule()              {}
func (Document) isRule()          {}

// RuleType is the numeric rule type of the CSSOM CSSRule interface
// (https://drafts.csswg.org/cssom/#the-cssrule-interface). The values
// are a stable external contract; script reads them through the `type`
// attribute.
type RuleType uint16

const (
	TypeStyle    RuleType = 1
	TypeCharset  RuleType = 2 // historical, never produced
	TypeImport   RuleType = 3
	TypeMedia    RuleType = 4
	TypeFontFace RuleType = 5
	TypePage     RuleType = 6
	// https://drafts.csswg.org/css-animations-1/#interface-cssrule-idl
	TypeKeyframes RuleType = 7
	TypeKeyframe  RuleType = 8 // owned by the keyframes implementation
	TypeMargin    RuleType = 9 // not represented here
	TypeNamespace RuleType = 10
	// https://drafts.csswg.org/css-counter-styles-3/#extentions-to-cssrule-interface
	TypeCounterStyle RuleType = 11
	// https://drafts.csswg.org/css-conditional-3/#extentions-to-cssrule-interface
	TypeSupports RuleType = 12
	TypeDocument RuleType = 13
	// https://drafts.csswg.org/css-fonts-3/#om-fontfeaturevalues
	TypeFontFeatureValues RuleType = 14
	// https://drafts.csswg.org/css-device-adapt/#css-rule-interface
	TypeViewport RuleType = 15
)

func (t RuleType) String() string {
	switch t {
	case TypeStyle:
		return "style"
	case TypeCharset:
		return "charset"
	case TypeImport:
		return "import"
	case TypeMedia:
		return "media"
	case TypeFontFace:
		return "font-face"
	case TypePage:
		return "page"
	case TypeKeyframes:
		return "keyframes"
	case TypeKeyframe:
		return "keyframe"
	case TypeMargin:
		return "margin"
	case TypeNamespace:
		return "namespace"
	case TypeCounterStyle:
		return "counter-style"
	case TypeSupports:
		return "supports"
	case TypeDocument:
		return "document"
	case TypeFontFeatureValues:
		return "font-feature-values"
	case TypeViewport:
		return "viewport"
	}
	return "unknown"
}

// TypeOf returns the CSSOM rule type of a rule. It is pure and needs no
// guard: the variant alone determines the result.
func TypeOf(r Rule) RuleType {
	switch r.(type) {
	case Style:
		return TypeStyle
	case Import:
		return TypeImport
	case Media:
		return TypeMedia
	case FontFace:
		return TypeFontFace
	case FontFeatureValues:
		return TypeFontFeatureValues
	case CounterStyle:
		return TypeCounterStyle
	case Keyframes:
		return TypeKeyframes
	case Namespace:
		return TypeNamespace
	case Viewport:
		return TypeViewport
	case Supports:
		return TypeSupports
	case Page:
		return TypePage
	case Document:
		return TypeDocument
	}
	panic("cssrules: rule of unknown kind")
}

// ruleState is the parser-state contribution of a rule kind: the state
// the grammar-ordering machine is in after this rule has been consumed.
func ruleState(r Rule) State {
	switch r.(type) {
	case Import:
		return StateImports
	case Namespace:
		return StateNamespaces
	}
	return StateBody
}
