package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/cssrules/lock"
)

// CSSText serializes a rule to canonical CSS text, implementing the
// CSSOM "serialize a CSS rule" algorithm
// (https://drafts.csswg.org/cssom/#serialize-a-css-rule) for each kind.
// Serialization never mutates; the guard must belong to the rule's own
// lock (a mismatched guard is a usage error and panics).
func CSSText(r Rule, g *lock.ReadGuard) string {
	var sb strings.Builder
	appendCSS(&sb, r, g)
	return sb.String()
}

// WriteCSS writes the canonical CSS text of a rule to w.
func WriteCSS(r Rule, g *lock.ReadGuard, w io.Writer) error {
	_, err := io.WriteString(w, CSSText(r, g))
	return err
}

func appendCSS(sb *strings.Builder, r Rule, g *lock.ReadGuard) {
	switch v := r.(type) {
	case Namespace:
		rule := v.Rule.Read(g)
		sb.WriteString("@namespace ")
		if rule.Prefix != "" {
			sb.WriteString(rule.Prefix)
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "url(%q);", rule.URI)
	case Import:
		rule := v.Rule.Read(g)
		fmt.Fprintf(sb, "@import url(%q)", rule.URL)
		if rule.Media != "" {
			sb.WriteByte(' ')
			sb.WriteString(rule.Media)
		}
		sb.WriteByte(';')
	case Style:
		rule := v.Rule.Read(g)
		sb.WriteString(rule.Selectors)
		sb.WriteByte(' ')
		appendBlock(sb, *rule.Block.Read(g))
	case Media:
		rule := v.Rule.Read(g)
		sb.WriteString("@media")
		if rule.Query != "" {
			sb.WriteByte(' ')
			sb.WriteString(rule.Query)
		}
		appendRuleList(sb, rule.Rules, g)
	case FontFace:
		rule := v.Rule.Read(g)
		sb.WriteString("@font-face ")
		appendBlock(sb, rule.Block)
	case FontFeatureValues:
		rule := v.Rule.Read(g)
		sb.WriteString("@font-feature-values ")
		sb.WriteString(rule.Families)
		sb.WriteString(" {")
		for _, b := range rule.Blocks {
			sb.WriteString(" @")
			sb.WriteString(b.Name)
			sb.WriteByte(' ')
			appendBlock(sb, b.Block)
		}
		sb.WriteString(" }")
	case CounterStyle:
		rule := v.Rule.Read(g)
		sb.WriteString("@counter-style ")
		sb.WriteString(rule.Name)
		sb.WriteByte(' ')
		appendBlock(sb, rule.Block)
	case Viewport:
		rule := v.Rule.Read(g)
		sb.WriteString("@viewport ")
		appendBlock(sb, rule.Block)
	case Keyframes:
		rule := v.Rule.Read(g)
		sb.WriteString("@keyframes ")
		sb.WriteString(rule.Name)
		sb.WriteString(" {")
		for _, cell := range rule.Keyframes {
			kf := cell.Read(g)
			sb.WriteByte(' ')
			sb.WriteString(kf.Selector)
			sb.WriteByte(' ')
			appendBlock(sb, kf.Block)
		}
		sb.WriteString(" }")
	case Supports:
		rule := v.Rule.Read(g)
		sb.WriteString("@supports ")
		sb.WriteString(rule.Condition)
		appendRuleList(sb, rule.Rules, g)
	case Page:
		rule := v.Rule.Read(g)
		sb.WriteString("@page ")
		if rule.Selector != "" {
			sb.WriteString(rule.Selector)
			sb.WriteByte(' ')
		}
		appendBlock(sb, *rule.Block.Read(g))
	case Document:
		rule := v.Rule.Read(g)
		sb.WriteString("@-moz-document ")
		sb.WriteString(rule.Condition)
		appendRuleList(sb, rule.Rules, g)
	default:
		panic("cssrules: rule of unknown kind")
	}
}

// appendBlock writes a declaration block as `{ prop: value; ... }`.
func appendBlock(sb *strings.Builder, block DeclarationBlock) {
	if len(block.Declarations) == 0 {
		sb.WriteString("{ }")
		return
	}
	sb.WriteByte('{')
	for i := range block.Declarations {
		d := &block.Declarations[i]
		sb.WriteByte(' ')
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		if d.Important {
			sb.WriteString(" !important")
		}
		sb.WriteByte(';')
	}
	sb.WriteString(" }")
}

// appendRuleList writes the nested rules of a conditional group rule.
func appendRuleList(sb *strings.Builder, list RuleList, g *lock.ReadGuard) {
	sb.WriteString(" {")
	for _, r := range list {
		sb.WriteByte(' ')
		appendCSS(sb, r, g)
	}
	sb.WriteString(" }")
}
