/*
Package cssrules implements the rule representation and rule lifecycle
layer of a CSS stylesheet engine.

Status

This is the concurrency-critical core of a styling engine: the closed set
of CSS rule kinds, the sharing model that lets parallel style workers read
rule trees while document scripts occasionally mutate them, single-rule
parsing with its grammar-ordering state machine, deep cloning of rule
trees under a new lock, canonical serialization back to CSS text, and
memory accounting with an explicit double-counting boundary.

Overview

A rule is a member of a closed sum over twelve kinds (style, media,
import, namespace, ...). Each kind wraps its payload in a lock.Locked
cell; all cells of one stylesheet tree share a single lock.SharedLock, so
one read guard snapshots the whole tree atomically. Every cross-cutting
operation (type identification, parsing, deep cloning, serialization,
memory accounting) dispatches exhaustively over the twelve kinds, so
adding a kind forces all five protocols to be updated together.

Deliberately out of scope, treated as external collaborators: the CSS
tokenizer (we drive github.com/tdewolff/parse/v2/css), selector matching
and the cascade, per-kind business logic such as media query evaluation
or keyframe interpolation, the DOM/CSSOM binding, and the top-level
multi-rule sheet parser with its skip-and-continue error recovery. This
package only supplies the per-rule classification such a sheet parser
needs.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssrules

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cssrules.rules'.
func tracer() tracing.Trace {
	return tracing.Select("cssrules.rules")
}
