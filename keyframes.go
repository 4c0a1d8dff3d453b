package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/cssrules/lock"

// KeyframesRule is the payload of an @keyframes rule. The individual
// keyframes are lock-guarded themselves, because script may mutate a
// single keyframe through the CSSOM while style workers read its
// siblings.
type KeyframesRule struct {
	Name      string
	Keyframes []*lock.Locked[Keyframe]
}

// Keyframe is one keyframe of an @keyframes rule, e.g. `50% { ... }`.
// Its CSSOM type constant is TypeKeyframe; interpolation between
// keyframes is owned by the animation engine.
type Keyframe struct {
	Selector string // "from", "to", or a percentage list
	Block    DeclarationBlock
}

func (r KeyframesRule) deepClone(to *lock.SharedLock, g *lock.ReadGuard) KeyframesRule {
	c := KeyframesRule{Name: r.Name}
	if r.Keyframes != nil {
		c.Keyframes = make([]*lock.Locked[Keyframe], len(r.Keyframes))
		for i, cell := range r.Keyframes {
			kf := cell.Read(g)
			c.Keyframes[i] = lock.Wrap(to, Keyframe{
				Selector: kf.Selector,
				Block:    kf.Block.clone(),
			})
		}
	}
	return c
}
