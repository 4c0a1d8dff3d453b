package cssrules

import (
	"testing"

	"github.com/npillmayer/cssrules/lock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// The numeric values are the CSSOM constants script observes through
// CSSRule.type; they are a stable external contract.
func TestRuleTypeConstants(t *testing.T) {
	assert.EqualValues(t, 1, TypeStyle)
	assert.EqualValues(t, 2, TypeCharset)
	assert.EqualValues(t, 3, TypeImport)
	assert.EqualValues(t, 4, TypeMedia)
	assert.EqualValues(t, 5, TypeFontFace)
	assert.EqualValues(t, 6, TypePage)
	assert.EqualValues(t, 7, TypeKeyframes)
	assert.EqualValues(t, 8, TypeKeyframe)
	assert.EqualValues(t, 9, TypeMargin)
	assert.EqualValues(t, 10, TypeNamespace)
	assert.EqualValues(t, 11, TypeCounterStyle)
	assert.EqualValues(t, 12, TypeSupports)
	assert.EqualValues(t, 13, TypeDocument)
	assert.EqualValues(t, 14, TypeFontFeatureValues)
	assert.EqualValues(t, 15, TypeViewport)
}

// TypeOf needs no guard and depends only on the variant, never on the
// payload.
func TestTypeOfIsPure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	l1 := lock.NewSharedLock()
	l2 := lock.NewSharedLock()
	a := Style{Rule: lock.Wrap(l1, StyleRule{Selectors: ".a"})}
	b := Style{Rule: lock.Wrap(l2, StyleRule{Selectors: "#completely-different"})}
	assert.Equal(t, TypeOf(a), TypeOf(b))
	assert.Equal(t, TypeStyle, TypeOf(a))
}

func TestTypeOfAllVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	l := lock.NewSharedLock()
	cases := []struct {
		rule Rule
		want RuleType
	}{
		{Namespace{Rule: lock.Wrap(l, NamespaceRule{})}, TypeNamespace},
		{Import{Rule: lock.Wrap(l, ImportRule{})}, TypeImport},
		{Style{Rule: lock.Wrap(l, StyleRule{})}, TypeStyle},
		{Media{Rule: lock.Wrap(l, MediaRule{})}, TypeMedia},
		{FontFace{Rule: lock.Wrap(l, FontFaceRule{})}, TypeFontFace},
		{FontFeatureValues{Rule: lock.Wrap(l, FontFeatureValuesRule{})}, TypeFontFeatureValues},
		{CounterStyle{Rule: lock.Wrap(l, CounterStyleRule{})}, TypeCounterStyle},
		{Viewport{Rule: lock.Wrap(l, ViewportRule{})}, TypeViewport},
		{Keyframes{Rule: lock.Wrap(l, KeyframesRule{})}, TypeKeyframes},
		{Supports{Rule: lock.Wrap(l, SupportsRule{})}, TypeSupports},
		{Page{Rule: lock.Wrap(l, PageRule{})}, TypePage},
		{Document{Rule: lock.Wrap(l, DocumentRule{})}, TypeDocument},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TypeOf(c.rule))
	}
}

func TestRuleStateContribution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.rules")
	defer teardown()
	//
	l := lock.NewSharedLock()
	if s := ruleState(Import{Rule: lock.Wrap(l, ImportRule{})}); s != StateImports {
		t.Errorf("expected import to contribute state imports, is %s", s)
	}
	if s := ruleState(Namespace{Rule: lock.Wrap(l, NamespaceRule{})}); s != StateNamespaces {
		t.Errorf("expected namespace to contribute state namespaces, is %s", s)
	}
	if s := ruleState(Style{Rule: lock.Wrap(l, StyleRule{})}); s != StateBody {
		t.Errorf("expected style to contribute state body, is %s", s)
	}
}
