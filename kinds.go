package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/cssrules/lock"
)

// Payload types for the rule kinds. Representation only: evaluating a
// media query, interpolating keyframes or building font feature tables is
// the business of the styling engine proper, not of this package.

// RuleList is an ordered list of nested rules, as carried by conditional
// group rules. Index-based mutation (insertRule/deleteRule positioning)
// belongs to the rule-list container layer, which builds on the per-rule
// operations of this package.
type RuleList []Rule

// DeclarationBlock is a block of property declarations, e.g. the body of
// a style rule. Declarations reuse the douceur CSS AST.
type DeclarationBlock struct {
	Declarations []css.Declaration
}

func (b DeclarationBlock) clone() DeclarationBlock {
	c := DeclarationBlock{}
	if b.Declarations != nil {
		c.Declarations = make([]css.Declaration, len(b.Declarations))
		copy(c.Declarations, b.Declarations)
	}
	return c
}

// RulePeer is a paired external object owning backend-side data of a
// rule (for example a platform font-face record). Rule kinds carrying a
// peer delegate cloning to it instead of value-copying.
type RulePeer interface {
	ClonePeer() RulePeer
}

// NamespaceRule is the payload of an @namespace rule. An empty Prefix
// denotes the default namespace.
type NamespaceRule struct {
	Prefix string
	URI    string
}

// ImportRule is the payload of an @import rule. Sheet is nil when no
// loader capability was present at parse time; fetching the nested sheet
// over the network happens entirely outside this package.
type ImportRule struct {
	URL   string
	Media string
	Sheet *ImportedSheet
}

// ImportedSheet is the nested stylesheet of an @import rule. Its rules
// are wrapped under the same shared lock as the importing tree, so one
// guard covers both.
type ImportedSheet struct {
	Contents *StylesheetContents
	Rules    RuleList
}

// StyleRule is the payload of a qualified style rule. Selectors stay
// uninterpreted text; matching them is the cascade engine's business.
type StyleRule struct {
	Selectors string
	Block     *lock.Locked[DeclarationBlock]
}

// MediaRule is the payload of an @media rule.
type MediaRule struct {
	Query string
	Rules RuleList
}

// SupportsRule is the payload of an @supports rule.
type SupportsRule struct {
	Condition string
	Rules     RuleList
}

// DocumentRule is the payload of an @document / @-moz-document rule.
type DocumentRule struct {
	Condition string
	Rules     RuleList
}

// PageRule is the payload of an @page rule. Selector is the optional
// page selector, e.g. ":first".
type PageRule struct {
	Selector string
	Block    *lock.Locked[DeclarationBlock]
}

// FontFaceRule is the payload of an @font-face rule.
type FontFaceRule struct {
	Block DeclarationBlock
	Peer  RulePeer
}

// clone selects the backend-appropriate strategy: a plain value copy, or
// delegation to the paired peer object when one is attached. The deep
// clone dispatcher never branches on backend identity itself.
func (r FontFaceRule) clone() FontFaceRule {
	c := FontFaceRule{Block: r.Block.clone()}
	if r.Peer != nil {
		c.Peer = r.Peer.ClonePeer()
	}
	return c
}

// CounterStyleRule is the payload of an @counter-style rule.
type CounterStyleRule struct {
	Name  string
	Block DeclarationBlock
	Peer  RulePeer
}

// clone works like FontFaceRule.clone.
func (r CounterStyleRule) clone() CounterStyleRule {
	c := CounterStyleRule{Name: r.Name, Block: r.Block.clone()}
	if r.Peer != nil {
		c.Peer = r.Peer.ClonePeer()
	}
	return c
}

// ViewportRule is the payload of an @viewport rule.
type ViewportRule struct {
	Block DeclarationBlock
}

// FontFeatureValuesRule is the payload of an @font-feature-values rule.
type FontFeatureValuesRule struct {
	Families string
	Blocks   []FeatureValuesBlock
}

// FeatureValuesBlock is one feature value block inside an
// @font-feature-values rule, e.g. `@swash { delicate: 1; }`.
type FeatureValuesBlock struct {
	Name  string // "swash", "styleset", ...
	Block DeclarationBlock
}

func (r FontFeatureValuesRule) clone() FontFeatureValuesRule {
	c := FontFeatureValuesRule{Families: r.Families}
	if r.Blocks != nil {
		c.Blocks = make([]FeatureValuesBlock, len(r.Blocks))
		for i, b := range r.Blocks {
			c.Blocks[i] = FeatureValuesBlock{Name: b.Name, Block: b.Block.clone()}
		}
	}
	return c
}
