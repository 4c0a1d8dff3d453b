package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/cssrules/lock"

// DeepCloneParams carries clone-scope controls, forwarded unchanged into
// nested rule implementations.
type DeepCloneParams struct {
	// ImportShellsOnly clones @import rules as shells, without
	// duplicating the nested stylesheet they reference.
	ImportShellsOnly bool
}

// DeepClone rebuilds a rule tree under a different lock, severing all
// aliasing with the source tree. The guard must belong to the source
// tree's lock; the result references exclusively `to`, transitively
// through container rules. Used when a stylesheet must be duplicated,
// e.g. for an independent copy handed to another document.
func DeepClone(r Rule, to *lock.SharedLock, g *lock.ReadGuard, params *DeepCloneParams) Rule {
	if params == nil {
		params = &DeepCloneParams{}
	}
	switch v := r.(type) {
	case Namespace:
		rule := v.Rule.Read(g)
		return Namespace{Rule: lock.Wrap(to, *rule)}
	case Import:
		rule := v.Rule.Read(g)
		return Import{Rule: lock.Wrap(to, rule.deepClone(to, g, params))}
	case Style:
		rule := v.Rule.Read(g)
		return Style{Rule: lock.Wrap(to, StyleRule{
			Selectors: rule.Selectors,
			Block:     lock.Wrap(to, rule.Block.Read(g).clone()),
		})}
	case Media:
		rule := v.Rule.Read(g)
		return Media{Rule: lock.Wrap(to, MediaRule{
			Query: rule.Query,
			Rules: rule.Rules.deepClone(to, g, params),
		})}
	case FontFace:
		rule := v.Rule.Read(g)
		return FontFace{Rule: lock.Wrap(to, rule.clone())}
	case FontFeatureValues:
		rule := v.Rule.Read(g)
		return FontFeatureValues{Rule: lock.Wrap(to, rule.clone())}
	case CounterStyle:
		rule := v.Rule.Read(g)
		return CounterStyle{Rule: lock.Wrap(to, rule.clone())}
	case Viewport:
		rule := v.Rule.Read(g)
		return Viewport{Rule: lock.Wrap(to, ViewportRule{Block: rule.Block.clone()})}
	case Keyframes:
		rule := v.Rule.Read(g)
		return Keyframes{Rule: lock.Wrap(to, rule.deepClone(to, g))}
	case Supports:
		rule := v.Rule.Read(g)
		return Supports{Rule: lock.Wrap(to, SupportsRule{
			Condition: rule.Condition,
			Rules:     rule.Rules.deepClone(to, g, params),
		})}
	case Page:
		rule := v.Rule.Read(g)
		return Page{Rule: lock.Wrap(to, PageRule{
			Selector: rule.Selector,
			Block:    lock.Wrap(to, rule.Block.Read(g).clone()),
		})}
	case Document:
		rule := v.Rule.Read(g)
		return Document{Rule: lock.Wrap(to, DocumentRule{
			Condition: rule.Condition,
			Rules:     rule.Rules.deepClone(to, g, params),
		})}
	}
	panic("cssrules: rule of unknown kind")
}

func (list RuleList) deepClone(to *lock.SharedLock, g *lock.ReadGuard, params *DeepCloneParams) RuleList {
	if list == nil {
		return nil
	}
	c := make(RuleList, len(list))
	for i, r := range list {
		c[i] = DeepClone(r, to, g, params)
	}
	return c
}

func (r *ImportRule) deepClone(to *lock.SharedLock, g *lock.ReadGuard, params *DeepCloneParams) ImportRule {
	c := ImportRule{URL: r.URL, Media: r.Media}
	if r.Sheet != nil && !params.ImportShellsOnly {
		c.Sheet = &ImportedSheet{
			Contents: r.Sheet.Contents.deepClone(),
			Rules:    r.Sheet.Rules.deepClone(to, g, params),
		}
	}
	return c
}
