/*
Package lock provides the shared reader/writer lock for stylesheet trees.

Overview

Style computation runs on many worker threads in parallel, all of them
reading rule content, while document scripts occasionally mutate rules
through the CSSOM. Instead of giving every rule its own mutex, a whole
stylesheet tree shares exactly one SharedLock. Acquiring a single read
guard therefore yields an atomic snapshot of every rule in the tree.

Locking is never implicit. A SharedLock issues guard tokens (ReadGuard,
WriteGuard), and every access to protected content takes such a token as
an explicit parameter. This way each call site documents its locking
requirement, and hidden or re-entrant lock acquisition cannot occur.

Protected values are held in Locked cells. A cell remembers which lock
protects it; presenting a guard from a different lock is a programmer
error and panics. It is not a recoverable condition.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lock

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cssrules.lock'.
func tracer() tracing.Trace {
	return tracing.Select("cssrules.lock")
}
