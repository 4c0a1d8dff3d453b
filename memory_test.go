package cssrules

import (
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/cssrules/lock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func declOf(property, value string) css.Declaration {
	return css.Declaration{Property: property, Value: value}
}

// counts every measured value as its string/slice length, which is good
// enough to tell "measured" from "exempt"
func lengthSizer(v interface{}) uintptr {
	switch x := v.(type) {
	case string:
		return uintptr(len(x))
	case []Rule:
		return uintptr(len(x)) * 8
	default:
		return 8
	}
}

// Kinds measured by a paired external owner must report 0 regardless of
// payload size, to avoid double counting.
func TestMemoryExemptKindsReportZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	l := lock.NewSharedLock()
	big := DeclarationBlock{}
	for i := 0; i < 64; i++ {
		big.Declarations = append(big.Declarations, declOf("font-family", "A Very Long Family Name Indeed"))
	}
	exempt := []Rule{
		Namespace{Rule: lock.Wrap(l, NamespaceRule{Prefix: "svg", URI: "http://www.w3.org/2000/svg"})},
		Import{Rule: lock.Wrap(l, ImportRule{URL: "https://example.org/very/long/path.css"})},
		FontFace{Rule: lock.Wrap(l, FontFaceRule{Block: big})},
		FontFeatureValues{Rule: lock.Wrap(l, FontFeatureValuesRule{Families: "Font One"})},
		CounterStyle{Rule: lock.Wrap(l, CounterStyleRule{Name: "thumbs", Block: big})},
		Viewport{Rule: lock.Wrap(l, ViewportRule{Block: big})},
		Keyframes{Rule: lock.Wrap(l, KeyframesRule{Name: "pulse"})},
	}
	g := l.Read()
	defer g.Release()
	for _, r := range exempt {
		if n := SizeOfChildren(r, g, lengthSizer); n != 0 {
			t.Errorf("expected %s rule to be exempt from accounting, reports %d bytes", TypeOf(r), n)
		}
	}
}

func TestMemoryMeasuredKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	parent, l := testSheet()
	measured := []string{
		".a { color: red; }",
		"@media screen { .a { color: red; } }",
		"@supports (display: flex) { .b { display: flex; } }",
		"@page :first { margin: 25mm; }",
		`@-moz-document url-prefix("https://") { .c { color: blue; } }`,
	}
	state := StateStart
	for _, css := range measured {
		rule, next, err := Parse(css, parent, l, state, nil)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", css, err)
		}
		state = next
		g := l.Read()
		n := SizeOfChildren(rule, g, lengthSizer)
		g.Release()
		if n == 0 {
			t.Errorf("expected %s rule to be measured, reports 0 bytes", TypeOf(rule))
		}
	}
}

// Nested exempt rules stay exempt inside a measured container.
func TestMemoryNestedExemption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	parent, l := testSheet()
	rule, _, err := Parse("@media screen { @font-face { font-family: F; } }", parent, l, StateStart, nil)
	if err != nil {
		t.Fatalf("expected @media to parse, got %v", err)
	}
	g := l.Read()
	defer g.Release()
	want := lengthSizer("screen") + lengthSizer([]Rule{nil})
	if n := SizeOfChildren(rule, g, lengthSizer); n != want {
		t.Errorf("expected nested @font-face to stay exempt, media reports %d (want %d)", n, want)
	}
}
