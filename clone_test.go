package cssrules

import (
	"testing"

	"github.com/npillmayer/cssrules/lock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// Cloning a tree yields the same ordered rule types and identical
// serialization, with zero structural sharing.
func TestDeepClonePreservesShapeAndText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	parent, src := testSheet()
	rule, _, err := Parse("@media screen { .a { color: red; } @supports (display: grid) { .b { display: grid; } } }",
		parent, src, StateStart, nil)
	require.NoError(t, err)
	dst := lock.NewSharedLock()
	sg := src.Read()
	clone := DeepClone(rule, dst, sg, nil)
	srcText := CSSText(rule, sg)
	sg.Release()
	dg := dst.Read()
	defer dg.Release()
	require.Equal(t, TypeOf(rule), TypeOf(clone))
	require.Equal(t, srcText, CSSText(clone, dg))
	t.Logf("clone =\n%s", Dump(clone, dg))
}

func TestDeepCloneLockIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	parent, src := testSheet()
	rule, _, err := Parse("@media screen { .a { color: red; } }", parent, src, StateStart, nil)
	require.NoError(t, err)
	dst := lock.NewSharedLock()
	sg := src.Read()
	clone := DeepClone(rule, dst, sg, nil)
	sg.Release()
	// every reachable cell must be protected by the destination lock
	mediaClone := clone.(Media)
	require.True(t, mediaClone.Rule.ProtectedBy(dst))
	dg := dst.Read()
	mr := mediaClone.Rule.Read(dg)
	for _, nested := range mr.Rules {
		styleClone := nested.(Style)
		require.True(t, styleClone.Rule.ProtectedBy(dst))
		require.True(t, styleClone.Rule.Read(dg).Block.ProtectedBy(dst))
	}
	dg.Release()
	// operations on the clone must not block on the source lock, even
	// while a writer holds it exclusively
	wg := src.Write()
	dg = dst.Read()
	_ = CSSText(clone, dg)
	_ = SizeOfChildren(clone, dg, func(interface{}) uintptr { return 1 })
	dg.Release()
	wg.Release()
}

type countingPeer struct {
	clones *int
}

func (p countingPeer) ClonePeer() RulePeer {
	*p.clones++
	return p
}

// FontFace and CounterStyle own the choice between value copy and
// delegation to their paired peer object; the dispatcher never branches
// on backend identity.
func TestDeepCloneDelegatesToPeer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	src := lock.NewSharedLock()
	clones := 0
	ff := FontFace{Rule: lock.Wrap(src, FontFaceRule{Peer: countingPeer{clones: &clones}})}
	cs := CounterStyle{Rule: lock.Wrap(src, CounterStyleRule{Name: "thumbs", Peer: countingPeer{clones: &clones}})}
	dst := lock.NewSharedLock()
	g := src.Read()
	ffClone := DeepClone(ff, dst, g, nil)
	csClone := DeepClone(cs, dst, g, nil)
	g.Release()
	require.Equal(t, 2, clones)
	dg := dst.Read()
	defer dg.Release()
	require.NotNil(t, ffClone.(FontFace).Rule.Read(dg).Peer)
	require.Equal(t, "thumbs", csClone.(CounterStyle).Rule.Read(dg).Name)
}

func TestDeepCloneImportShells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	src := lock.NewSharedLock()
	nested := Style{Rule: lock.Wrap(src, StyleRule{
		Selectors: ".n",
		Block:     lock.Wrap(src, DeclarationBlock{}),
	})}
	imp := Import{Rule: lock.Wrap(src, ImportRule{
		URL: "foo.css",
		Sheet: &ImportedSheet{
			Contents: NewStylesheetContents(OriginAuthor, "foo.css", false),
			Rules:    RuleList{nested},
		},
	})}
	dst := lock.NewSharedLock()

	g := src.Read()
	shell := DeepClone(imp, dst, g, &DeepCloneParams{ImportShellsOnly: true})
	full := DeepClone(imp, dst, g, nil)
	g.Release()

	dg := dst.Read()
	defer dg.Release()
	if shell.(Import).Rule.Read(dg).Sheet != nil {
		t.Error("expected shells-only clone to drop the nested sheet")
	}
	fullSheet := full.(Import).Rule.Read(dg).Sheet
	if fullSheet == nil {
		t.Fatal("expected full clone to duplicate the nested sheet")
	}
	if len(fullSheet.Rules) != 1 {
		t.Fatalf("expected 1 nested rule in cloned sheet, got %d", len(fullSheet.Rules))
	}
	if !fullSheet.Rules[0].(Style).Rule.ProtectedBy(dst) {
		t.Error("expected cloned nested rule to live under the destination lock")
	}
}

func TestDeepCloneKeyframes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	parent, src := testSheet()
	rule, _, err := Parse("@keyframes pulse { from { opacity: 0; } to { opacity: 1; } }",
		parent, src, StateStart, nil)
	require.NoError(t, err)
	dst := lock.NewSharedLock()
	sg := src.Read()
	clone := DeepClone(rule, dst, sg, nil)
	sg.Release()
	dg := dst.Read()
	defer dg.Release()
	kr := clone.(Keyframes).Rule.Read(dg)
	require.Len(t, kr.Keyframes, 2)
	for _, cell := range kr.Keyframes {
		require.True(t, cell.ProtectedBy(dst))
	}
}
