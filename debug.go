package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/cssrules/lock"
	tp "github.com/xlab/treeprint"
)

// Dump renders a rule tree as an indented ASCII tree, one node per rule,
// labelled with the rule's kind and a short payload summary. Intended
// for developer inspection and debug traces, not for round-tripping.
func Dump(r Rule, g *lock.ReadGuard) string {
	p := tp.New()
	dumpInto(p, r, g)
	return p.String()
}

func dumpInto(p tp.Tree, r Rule, g *lock.ReadGuard) {
	label := dumpLabel(r, g)
	switch v := r.(type) {
	case Media:
		branch := p.AddBranch(label)
		for _, child := range v.Rule.Read(g).Rules {
			dumpInto(branch, child, g)
		}
	case Supports:
		branch := p.AddBranch(label)
		for _, child := range v.Rule.Read(g).Rules {
			dumpInto(branch, child, g)
		}
	case Document:
		branch := p.AddBranch(label)
		for _, child := range v.Rule.Read(g).Rules {
			dumpInto(branch, child, g)
		}
	case Import:
		rule := v.Rule.Read(g)
		if rule.Sheet == nil {
			p.AddNode(label)
			return
		}
		branch := p.AddBranch(label)
		for _, child := range rule.Sheet.Rules {
			dumpInto(branch, child, g)
		}
	case Keyframes:
		rule := v.Rule.Read(g)
		branch := p.AddBranch(label)
		for _, cell := range rule.Keyframes {
			kf := cell.Read(g)
			branch.AddNode(fmt.Sprintf("keyframe %q", kf.Selector))
		}
	default:
		p.AddNode(label)
	}
}

func dumpLabel(r Rule, g *lock.ReadGuard) string {
	t := TypeOf(r)
	switch v := r.(type) {
	case Namespace:
		rule := v.Rule.Read(g)
		return fmt.Sprintf("%s %q → %q", t, rule.Prefix, rule.URI)
	case Import:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).URL)
	case Style:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Selectors)
	case Media:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Query)
	case CounterStyle:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Name)
	case Keyframes:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Name)
	case Supports:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Condition)
	case Page:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Selector)
	case Document:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Condition)
	case FontFeatureValues:
		return fmt.Sprintf("%s %q", t, v.Rule.Read(g).Families)
	}
	return t.String()
}
