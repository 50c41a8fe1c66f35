package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a primitive CSS file: selectors .class or #id (comma lists allowed)
// and blocks of "key: value;". Other selectors and @rules are skipped.
// Later rules override earlier for the same selector.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{Rules: nil}
	p := css.NewParser(parse.NewInputString(content), false)
	var open []Rule // rules of the current ruleset, one per selector in the list
	depth := 0      // nesting of skipped @rule blocks
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return sheet, nil
			}
			return sheet, fmt.Errorf("ui: css: %w", p.Err())
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		case css.BeginRulesetGrammar:
			if depth > 0 {
				continue
			}
			open = nil
			for _, sel := range strings.Split(joinTokens(p.Values()), ",") {
				sel = strings.TrimSpace(sel)
				if simpleSelector(sel) {
					open = append(open, Rule{Selector: sel, Props: make(map[string]string)})
				}
			}
		case css.DeclarationGrammar:
			if depth > 0 {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(string(data)))
			val := strings.TrimSpace(joinTokens(p.Values()))
			for _, r := range open {
				r.Props[key] = val
			}
		case css.EndRulesetGrammar:
			sheet.Rules = append(sheet.Rules, open...)
			open = nil
		}
	}
}

// simpleSelector accepts ".name" or "#name" with no combinators.
func simpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " .#>+~:[")
}

func joinTokens(toks []css.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.Write(t.Data)
	}
	return b.String()
}
