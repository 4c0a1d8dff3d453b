package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/cssrules/lock"

// Origin is the cascade origin of a stylesheet
// (https://drafts.csswg.org/css-cascade/#cascading-origins).
type Origin uint8

const (
	OriginUserAgent Origin = iota
	OriginUser
	OriginAuthor
)

func (o Origin) String() string {
	switch o {
	case OriginUserAgent:
		return "user-agent"
	case OriginUser:
		return "user"
	}
	return "author"
}

// URLData is the information needed to resolve relative URL values
// occurring in rule text.
type URLData struct {
	BaseURL string
}

// Namespaces is the namespace table of a stylesheet, filled in by
// @namespace rules and consulted by the selector machinery.
type Namespaces struct {
	Default  string
	Prefixes map[string]string
}

func (ns Namespaces) clone() Namespaces {
	c := Namespaces{Default: ns.Default}
	if ns.Prefixes != nil {
		c.Prefixes = make(map[string]string, len(ns.Prefixes))
		for k, v := range ns.Prefixes {
			c.Prefixes[k] = v
		}
	}
	return c
}

// StylesheetContents is the read-mostly part of a stylesheet that rule
// parsing needs access to: the cascade origin, the quirks mode flag, URL
// resolution data behind a read lock, and the namespace table behind a
// read/write lock.
//
// The two small locks here are distinct from the shared rule-tree lock.
// The namespace write guard is only ever held for the duration of a
// single rule's parse and never nested with another stylesheet's lock;
// this ordering discipline is what keeps the engine deadlock free.
type StylesheetContents struct {
	Origin     Origin
	QuirksMode bool
	URLLock    *lock.SharedLock
	URLData    *lock.Locked[URLData]
	NSLock     *lock.SharedLock
	Namespaces *lock.Locked[Namespaces]
}

// NewStylesheetContents sets up the contents view for a stylesheet with
// an empty namespace table.
func NewStylesheetContents(origin Origin, baseURL string, quirks bool) *StylesheetContents {
	urlLock := lock.NewSharedLock()
	nsLock := lock.NewSharedLock()
	return &StylesheetContents{
		Origin:     origin,
		QuirksMode: quirks,
		URLLock:    urlLock,
		URLData:    lock.Wrap(urlLock, URLData{BaseURL: baseURL}),
		NSLock:     nsLock,
		Namespaces: lock.Wrap(nsLock, Namespaces{}),
	}
}

// deepClone duplicates the contents view with fresh locks. Used when an
// imported sheet is cloned in full.
func (c *StylesheetContents) deepClone() *StylesheetContents {
	ug := c.URLLock.Read()
	url := *c.URLData.Read(ug)
	ug.Release()
	ng := c.NSLock.Read()
	ns := c.Namespaces.Read(ng).clone()
	ng.Release()
	urlLock := lock.NewSharedLock()
	nsLock := lock.NewSharedLock()
	return &StylesheetContents{
		Origin:     c.Origin,
		QuirksMode: c.QuirksMode,
		URLLock:    urlLock,
		URLData:    lock.Wrap(urlLock, url),
		NSLock:     nsLock,
		Namespaces: lock.Wrap(nsLock, ns),
	}
}

// Loader is the capability to resolve the stylesheet referenced by an
// @import rule. Network fetch and caching live outside this package; a
// loader typically returns a handle whose rules get filled in later.
type Loader interface {
	RequestStylesheet(url string, media string) *ImportedSheet
}
