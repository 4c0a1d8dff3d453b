package cssrules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"io"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/cssrules/lock"
	parse "github.com/tdewolff/parse/v2"
	csslex "github.com/tdewolff/parse/v2/css"
)

// State is the grammar-ordering state of rule parsing. CSS requires
// @import rules before @namespace rules before anything else; the state
// machine advances monotonically Start → Imports → Namespaces → Body and
// rejects any rule whose placement would require moving backward.
//
// The zero value stands for "nested / mid-body" and is treated as
// StateBody: a recursive single-rule parse inside a conditional group
// rule always runs as if body content had already been consumed.
type State uint8

const (
	StateStart State = iota + 1
	StateImports
	StateNamespaces
	StateBody
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateImports:
		return "imports"
	case StateNamespaces:
		return "namespaces"
	}
	return "body"
}

// Parse parses a single CSS rule, dispatching on its kind, and returns
// the constructed rule together with the resulting grammar state, so the
// caller can validate the legality of the next rule.
//
// New rule payloads are wrapped under sheetLock, the shared lock of the
// rule tree the caller will store the rule in. For the duration of the
// call Parse holds a read guard on the parent's URL resolution data and
// a write guard on the parent's namespace table, because an @namespace
// rule registers its prefix as a side effect even when parsed in
// isolation. That registration is per rule and is never rolled back by a
// later, unrelated parse failure in the same sheet.
//
// state may be 0 (or StateBody) for nested parses; top-level-only rule
// kinds are then rejected with a hierarchy error. loader may be nil, in
// which case @import rules carry no nested sheet.
//
// Errors are *ParseError values classified Syntax or Hierarchy; the
// hierarchy classification is only used when a per-kind parser
// explicitly signalled an ordering violation.
func Parse(cssText string, parent *StylesheetContents, sheetLock *lock.SharedLock,
	state State, loader Loader) (Rule, State, error) {
	//
	if parent == nil || sheetLock == nil {
		panic("cssrules: Parse called without parent stylesheet or shared lock")
	}
	if state == 0 {
		state = StateBody
	}
	ug := parent.URLLock.Read()
	defer ug.Release()
	ng := parent.NSLock.Write()
	defer ng.Release()
	tracer().Debugf("parse single rule, origin=%s quirks=%v", parent.Origin, parent.QuirksMode)
	rp := &ruleParser{
		lx:         csslex.NewParser(parse.NewInputString(cssText), false),
		sheetLock:  sheetLock,
		loader:     loader,
		urlData:    parent.URLData.Read(ug),
		namespaces: parent.Namespaces.Write(ng),
		state:      state,
	}
	rule, err := rp.parseOne()
	if err == nil {
		err = rp.expectEnd()
	}
	if err != nil {
		tracer().Errorf("single rule parse failed: %v", err)
		return nil, state, err
	}
	next := ruleState(rule)
	tracer().Debugf("parsed %s rule, state %s → %s", TypeOf(rule), state, next)
	return rule, next, nil
}

// ruleParser drives the external CSS tokenizer for exactly one rule.
type ruleParser struct {
	lx         *csslex.Parser
	sheetLock  *lock.SharedLock
	loader     Loader
	urlData    *URLData
	namespaces *Namespaces
	state      State
	nested     bool
}

func (rp *ruleParser) parseOne() (Rule, error) {
	var sels []string
	for {
		gt, _, data := rp.lx.Next()
		switch gt {
		case csslex.ErrorGrammar:
			if err := rp.lx.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, syntaxErr("%v", err)
			}
			return nil, syntaxErr("no rule found")
		case csslex.CommentGrammar, csslex.TokenGrammar:
			continue
		case csslex.AtRuleGrammar:
			return rp.atRule(string(data), rp.lx.Values(), false)
		case csslex.BeginAtRuleGrammar:
			return rp.atRule(string(data), rp.lx.Values(), true)
		case csslex.QualifiedRuleGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
		case csslex.BeginRulesetGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
			return rp.styleRule(strings.Join(sels, ", "))
		default:
			return nil, syntaxErr("unexpected token at rule start")
		}
	}
}

// expectEnd verifies that nothing but trivia follows the parsed rule.
func (rp *ruleParser) expectEnd() error {
	for {
		gt, _, _ := rp.lx.Next()
		switch gt {
		case csslex.ErrorGrammar:
			if err := rp.lx.Err(); err != nil && !errors.Is(err, io.EOF) {
				return syntaxErr("%v", err)
			}
			return nil
		case csslex.CommentGrammar:
			continue
		default:
			return syntaxErr("content after end of rule")
		}
	}
}

// atRule dispatches an at-rule by name. hasBlock tells whether the
// tokenizer saw a `{}` block (BeginAtRuleGrammar) or a `;` terminated
// prelude (AtRuleGrammar).
func (rp *ruleParser) atRule(name string, prelude []csslex.Token, hasBlock bool) (Rule, error) {
	switch strings.ToLower(name) {
	case "@import":
		if hasBlock {
			return nil, syntaxErr("@import does not take a block")
		}
		return rp.importRule(prelude)
	case "@namespace":
		if hasBlock {
			return nil, syntaxErr("@namespace does not take a block")
		}
		return rp.namespaceRule(prelude)
	case "@charset":
		// CSSCharsetRule has been removed from CSSOM; a charset rule is
		// not parseable in isolation.
		return nil, syntaxErr("@charset is not a valid rule here")
	case "@media":
		if !hasBlock {
			return nil, syntaxErr("@media requires a block")
		}
		query := rawText(prelude)
		rules, err := rp.nestedRules()
		if err != nil {
			return nil, err
		}
		return Media{Rule: lock.Wrap(rp.sheetLock, MediaRule{Query: query, Rules: rules})}, nil
	case "@supports":
		if !hasBlock {
			return nil, syntaxErr("@supports requires a block")
		}
		cond := rawText(prelude)
		if cond == "" {
			return nil, syntaxErr("@supports requires a condition")
		}
		rules, err := rp.nestedRules()
		if err != nil {
			return nil, err
		}
		return Supports{Rule: lock.Wrap(rp.sheetLock, SupportsRule{Condition: cond, Rules: rules})}, nil
	case "@document", "@-moz-document":
		if !hasBlock {
			return nil, syntaxErr("@document requires a block")
		}
		cond := rawText(prelude)
		if cond == "" {
			return nil, syntaxErr("@document requires a condition")
		}
		rules, err := rp.nestedRules()
		if err != nil {
			return nil, err
		}
		return Document{Rule: lock.Wrap(rp.sheetLock, DocumentRule{Condition: cond, Rules: rules})}, nil
	case "@font-face":
		if !hasBlock {
			return nil, syntaxErr("@font-face requires a block")
		}
		block, err := rp.declarationsUntil(csslex.EndAtRuleGrammar)
		if err != nil {
			return nil, err
		}
		return FontFace{Rule: lock.Wrap(rp.sheetLock, FontFaceRule{Block: block})}, nil
	case "@viewport":
		if !hasBlock {
			return nil, syntaxErr("@viewport requires a block")
		}
		block, err := rp.declarationsUntil(csslex.EndAtRuleGrammar)
		if err != nil {
			return nil, err
		}
		return Viewport{Rule: lock.Wrap(rp.sheetLock, ViewportRule{Block: block})}, nil
	case "@counter-style":
		if !hasBlock {
			return nil, syntaxErr("@counter-style requires a block")
		}
		cname := rawText(prelude)
		if cname == "" {
			return nil, syntaxErr("@counter-style requires a name")
		}
		block, err := rp.declarationsUntil(csslex.EndAtRuleGrammar)
		if err != nil {
			return nil, err
		}
		return CounterStyle{Rule: lock.Wrap(rp.sheetLock, CounterStyleRule{Name: cname, Block: block})}, nil
	case "@page":
		if !hasBlock {
			return nil, syntaxErr("@page requires a block")
		}
		sel := rawText(prelude)
		block, err := rp.declarationsUntil(csslex.EndAtRuleGrammar)
		if err != nil {
			return nil, err
		}
		return Page{Rule: lock.Wrap(rp.sheetLock, PageRule{
			Selector: sel,
			Block:    lock.Wrap(rp.sheetLock, block),
		})}, nil
	case "@keyframes":
		if !hasBlock {
			return nil, syntaxErr("@keyframes requires a block")
		}
		kname := rawText(prelude)
		if kname == "" {
			return nil, syntaxErr("@keyframes requires a name")
		}
		kfs, err := rp.keyframes()
		if err != nil {
			return nil, err
		}
		return Keyframes{Rule: lock.Wrap(rp.sheetLock, KeyframesRule{Name: kname, Keyframes: kfs})}, nil
	case "@font-feature-values":
		if !hasBlock {
			return nil, syntaxErr("@font-feature-values requires a block")
		}
		families := rawText(prelude)
		if families == "" {
			return nil, syntaxErr("@font-feature-values requires a font family list")
		}
		blocks, err := rp.featureValuesBlocks()
		if err != nil {
			return nil, err
		}
		return FontFeatureValues{Rule: lock.Wrap(rp.sheetLock,
			FontFeatureValuesRule{Families: families, Blocks: blocks})}, nil
	}
	return nil, syntaxErr("unknown at-rule %q", name)
}

// importRule parses an @import prelude. The ordering constraint: imports
// are only legal before any namespace or body content.
func (rp *ruleParser) importRule(prelude []csslex.Token) (Rule, error) {
	if rp.nested {
		return nil, hierarchyErr("@import is not allowed inside another rule")
	}
	if rp.state > StateImports {
		return nil, hierarchyErr("@import must precede all other rule kinds")
	}
	url, rest, ok := urlFromTokens(prelude)
	if !ok {
		return nil, syntaxErr("@import requires a URL")
	}
	media := rawText(rest)
	tracer().Debugf("@import %q relative to %q", url, rp.urlData.BaseURL)
	var sheet *ImportedSheet
	if rp.loader != nil {
		sheet = rp.loader.RequestStylesheet(url, media)
	}
	return Import{Rule: lock.Wrap(rp.sheetLock, ImportRule{
		URL:   url,
		Media: media,
		Sheet: sheet,
	})}, nil
}

// namespaceRule parses an @namespace prelude and registers the mapping
// in the parent's namespace table, under the write guard held by Parse.
func (rp *ruleParser) namespaceRule(prelude []csslex.Token) (Rule, error) {
	if rp.nested {
		return nil, hierarchyErr("@namespace is not allowed inside another rule")
	}
	if rp.state > StateNamespaces {
		return nil, hierarchyErr("@namespace must precede body content")
	}
	var prefix string
	toks := skipTrivia(prelude)
	if len(toks) > 0 && toks[0].TokenType == csslex.IdentToken {
		prefix = string(toks[0].Data)
		toks = toks[1:]
	}
	uri, rest, ok := urlFromTokens(toks)
	if !ok || len(skipTrivia(rest)) > 0 {
		return nil, syntaxErr("@namespace requires a namespace URI")
	}
	if prefix == "" {
		rp.namespaces.Default = uri
	} else {
		if rp.namespaces.Prefixes == nil {
			rp.namespaces.Prefixes = make(map[string]string)
		}
		rp.namespaces.Prefixes[prefix] = uri
	}
	return Namespace{Rule: lock.Wrap(rp.sheetLock, NamespaceRule{
		Prefix: prefix,
		URI:    uri,
	})}, nil
}

// styleRule reads the declaration block of a qualified rule. The
// selector prelude has already been consumed.
func (rp *ruleParser) styleRule(selectors string) (Rule, error) {
	if selectors == "" {
		return nil, syntaxErr("style rule without selectors")
	}
	block, err := rp.declarationsUntil(csslex.EndRulesetGrammar)
	if err != nil {
		return nil, err
	}
	return Style{Rule: lock.Wrap(rp.sheetLock, StyleRule{
		Selectors: selectors,
		Block:     lock.Wrap(rp.sheetLock, block),
	})}, nil
}

// nestedRules reads the body of a conditional group rule (@media,
// @supports, @document) up to its closing brace. Rules in there parse
// mid-body: @import and @namespace are hierarchy errors.
func (rp *ruleParser) nestedRules() (RuleList, error) {
	wasNested := rp.nested
	rp.nested = true
	defer func() { rp.nested = wasNested }()
	var list RuleList
	var sels []string
	for {
		gt, _, data := rp.lx.Next()
		switch gt {
		case csslex.EndAtRuleGrammar:
			return list, nil
		case csslex.AtRuleGrammar:
			r, err := rp.atRule(string(data), rp.lx.Values(), false)
			if err != nil {
				return nil, err
			}
			list = append(list, r)
		case csslex.BeginAtRuleGrammar:
			r, err := rp.atRule(string(data), rp.lx.Values(), true)
			if err != nil {
				return nil, err
			}
			list = append(list, r)
		case csslex.QualifiedRuleGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
		case csslex.BeginRulesetGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
			r, err := rp.styleRule(strings.Join(sels, ", "))
			if err != nil {
				return nil, err
			}
			sels = nil
			list = append(list, r)
		case csslex.CommentGrammar, csslex.TokenGrammar:
			continue
		case csslex.ErrorGrammar:
			return nil, syntaxErr("unclosed conditional group block")
		default:
			return nil, syntaxErr("unexpected content in conditional group block")
		}
	}
}

// declarationsUntil harvests property declarations up to the given
// closing grammar event (EndRulesetGrammar for qualified rules,
// EndAtRuleGrammar for declaration-valued at-rules).
func (rp *ruleParser) declarationsUntil(end csslex.GrammarType) (DeclarationBlock, error) {
	var block DeclarationBlock
	for {
		gt, _, data := rp.lx.Next()
		switch gt {
		case end:
			return block, nil
		case csslex.DeclarationGrammar, csslex.CustomPropertyGrammar:
			value, important := declValue(rp.lx.Values())
			block.Declarations = append(block.Declarations, css.Declaration{
				Property:  string(data),
				Value:     value,
				Important: important,
			})
		case csslex.CommentGrammar, csslex.TokenGrammar:
			continue
		case csslex.ErrorGrammar:
			return block, syntaxErr("unclosed declaration block")
		default:
			return block, syntaxErr("unexpected content in declaration block")
		}
	}
}

// keyframes reads the body of an @keyframes rule: a sequence of keyframe
// selectors (from/to/percentages) with declaration blocks.
func (rp *ruleParser) keyframes() ([]*lock.Locked[Keyframe], error) {
	var kfs []*lock.Locked[Keyframe]
	var sels []string
	for {
		gt, _, data := rp.lx.Next()
		switch gt {
		case csslex.EndAtRuleGrammar:
			return kfs, nil
		case csslex.QualifiedRuleGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
		case csslex.BeginRulesetGrammar:
			sels = append(sels, selectorText(data, rp.lx.Values()))
			block, err := rp.declarationsUntil(csslex.EndRulesetGrammar)
			if err != nil {
				return nil, err
			}
			kfs = append(kfs, lock.Wrap(rp.sheetLock, Keyframe{
				Selector: strings.Join(sels, ", "),
				Block:    block,
			}))
			sels = nil
		case csslex.CommentGrammar, csslex.TokenGrammar:
			continue
		case csslex.ErrorGrammar:
			return nil, syntaxErr("unclosed @keyframes block")
		default:
			return nil, syntaxErr("unexpected content in @keyframes block")
		}
	}
}

// featureValuesBlocks reads the body of an @font-feature-values rule: a
// sequence of feature blocks like `@swash { delicate: 1; }`.
func (rp *ruleParser) featureValuesBlocks() ([]FeatureValuesBlock, error) {
	var blocks []FeatureValuesBlock
	for {
		gt, _, data := rp.lx.Next()
		switch gt {
		case csslex.EndAtRuleGrammar:
			return blocks, nil
		case csslex.BeginAtRuleGrammar:
			block, err := rp.declarationsUntil(csslex.EndAtRuleGrammar)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, FeatureValuesBlock{
				Name:  strings.TrimPrefix(strings.ToLower(string(data)), "@"),
				Block: block,
			})
		case csslex.CommentGrammar, csslex.TokenGrammar:
			continue
		case csslex.ErrorGrammar:
			return nil, syntaxErr("unclosed @font-feature-values block")
		default:
			return nil, syntaxErr("unexpected content in @font-feature-values block")
		}
	}
}

// --- Token helpers ---------------------------------------------------------

// selectorText reconstructs a selector prelude from the tokenizer's data
// plus value tokens, collapsing whitespace.
func selectorText(data []byte, values []csslex.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range values {
		if t.TokenType == csslex.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// rawText renders tokens back to text with whitespace runs collapsed to
// a single blank.
func rawText(tokens []csslex.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		switch t.TokenType {
		case csslex.WhitespaceToken:
			if sb.Len() > 0 {
				space = true
			}
		case csslex.CommentToken:
			// trivia
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.Write(t.Data)
		}
	}
	return sb.String()
}

func skipTrivia(tokens []csslex.Token) []csslex.Token {
	for len(tokens) > 0 {
		tt := tokens[0].TokenType
		if tt != csslex.WhitespaceToken && tt != csslex.CommentToken {
			break
		}
		tokens = tokens[1:]
	}
	return tokens
}

// urlFromTokens extracts a URL given as url(...), as url("...") or as a
// plain string from the head of a token list. It returns the remaining
// tokens after the URL part.
func urlFromTokens(tokens []csslex.Token) (url string, rest []csslex.Token, ok bool) {
	tokens = skipTrivia(tokens)
	if len(tokens) == 0 {
		return "", nil, false
	}
	t := tokens[0]
	switch t.TokenType {
	case csslex.URLToken:
		s := string(t.Data)
		if len(s) >= 5 { // url( ... )
			s = s[4 : len(s)-1]
		}
		return unquote(strings.TrimSpace(s)), tokens[1:], true
	case csslex.StringToken:
		return unquote(string(t.Data)), tokens[1:], true
	case csslex.FunctionToken:
		if !strings.EqualFold(string(t.Data), "url(") {
			return "", nil, false
		}
		for i := 1; i < len(tokens); i++ {
			switch tokens[i].TokenType {
			case csslex.StringToken:
				url = unquote(string(tokens[i].Data))
			case csslex.RightParenthesisToken:
				return url, tokens[i+1:], url != ""
			}
		}
		return "", nil, false
	}
	return "", nil, false
}

// declValue renders declaration value tokens to text and strips a
// trailing !important marker.
func declValue(tokens []csslex.Token) (string, bool) {
	end := len(tokens)
	for end > 0 && isTrivia(tokens[end-1]) {
		end--
	}
	important := false
	if end > 0 && tokens[end-1].TokenType == csslex.IdentToken &&
		strings.EqualFold(string(tokens[end-1].Data), "important") {
		i := end - 1
		for i > 0 && isTrivia(tokens[i-1]) {
			i--
		}
		if i > 0 && tokens[i-1].TokenType == csslex.DelimToken && string(tokens[i-1].Data) == "!" {
			important = true
			end = i - 1
		}
	}
	return rawText(tokens[:end]), important
}

func isTrivia(t csslex.Token) bool {
	return t.TokenType == csslex.WhitespaceToken || t.TokenType == csslex.CommentToken
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
