package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/cssrules/lock"

// SizeOf reports the retained heap size of a single value (string
// backing array, slice backing array, ...). The memory diagnostics
// subsystem supplies it; this package only decides what to measure.
type SizeOf func(v interface{}) uintptr

// SizeOfChildren sums the retained heap bytes of a rule's payload.
//
// Not every kind is measured here. Kinds whose payload is owned or
// measured by a paired external object report 0 to avoid double
// counting: Namespace, Import (measured in the document-level child
// list walk), FontFace, FontFeatureValues, CounterStyle, Viewport and
// Keyframes. Style, Media, Supports, Page and Document delegate to
// their payload's own accounting.
func SizeOfChildren(r Rule, g *lock.ReadGuard, sz SizeOf) uintptr {
	switch v := r.(type) {
	case Namespace:
		return 0
	case Import:
		return 0
	case Style:
		rule := v.Rule.Read(g)
		return sz(rule.Selectors) + rule.Block.Read(g).sizeOfChildren(sz)
	case Media:
		rule := v.Rule.Read(g)
		return sz(rule.Query) + rule.Rules.sizeOfChildren(g, sz)
	case FontFace:
		return 0
	case FontFeatureValues:
		return 0
	case CounterStyle:
		return 0
	case Viewport:
		return 0
	case Keyframes:
		return 0
	case Supports:
		rule := v.Rule.Read(g)
		return sz(rule.Condition) + rule.Rules.sizeOfChildren(g, sz)
	case Page:
		rule := v.Rule.Read(g)
		return sz(rule.Selector) + rule.Block.Read(g).sizeOfChildren(sz)
	case Document:
		rule := v.Rule.Read(g)
		return sz(rule.Condition) + rule.Rules.sizeOfChildren(g, sz)
	}
	panic("cssrules: rule of unknown kind")
}

func (b *DeclarationBlock) sizeOfChildren(sz SizeOf) uintptr {
	n := sz(b.Declarations)
	for i := range b.Declarations {
		n += sz(b.Declarations[i].Property)
		n += sz(b.Declarations[i].Value)
	}
	return n
}

func (list RuleList) sizeOfChildren(g *lock.ReadGuard, sz SizeOf) uintptr {
	n := sz([]Rule(list))
	for _, r := range list {
		n += SizeOfChildren(r, g, sz)
	}
	return n
}
