package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads stylesheets into rules and @keyframes blocks. It does not
// resolve the cascade: rules are reported in source order.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{}
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			switch atRule := strings.ToLower(string(data)); atRule {
			case "@keyframes", "@-webkit-keyframes":
				kf := p.parseKeyframes(parser)
				if kf.Name == "" {
					sheet.Warnings = append(sheet.Warnings, "@keyframes without a name")
					p.log.Debug("Skipping unnamed @keyframes")
					continue
				}
				p.log.Debug("Parsed @keyframes", zap.String("name", kf.Name), zap.Int("rules", len(kf.Rules)))
				sheet.Keyframes = append(sheet.Keyframes, kf)
			case "@media":
				query := joinTokens(parser.Values())
				rules := p.parseBlockRules(parser)
				sheet.Warnings = append(sheet.Warnings, "media query not evaluated: "+query)
				sheet.Rules = append(sheet.Rules, rules...)
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors:    splitSelectors(data, parser.Values()),
				Declarations: p.parseDeclarations(parser),
			})
		}
	}
}

// parseKeyframes reads the body of an @keyframes rule. The parser must be
// positioned right after its BeginAtRuleGrammar.
func (p *Parser) parseKeyframes(parser *css.Parser) *Keyframes {
	kf := &Keyframes{Name: keyframesName(parser.Values())}
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return kf
		case css.BeginRulesetGrammar:
			kf.Rules = append(kf.Rules, KeyframeRule{
				Values:       splitSelectors(data, parser.Values()),
				Declarations: p.parseDeclarations(parser),
			})
		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
		}
	}
}

func (p *Parser) parseBlockRules(parser *css.Parser) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			rules = append(rules, Rule{
				Selectors:    splitSelectors(data, parser.Values()),
				Declarations: p.parseDeclarations(parser),
			})
		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
		}
	}
}

// parseDeclarations parses property declarations until EndRulesetGrammar,
// keeping source order and duplicates.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			value := stripImportant(joinTokens(parser.Values()))
			if value == "" {
				continue
			}
			decls = append(decls, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    value,
			})
		case css.CustomPropertyGrammar:
			// custom properties (--var) are not resolved
			p.log.Debug("Skipping custom property", zap.ByteString("name", data))
		}
	}
}

func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// keyframesName extracts the name from the prelude of an @keyframes rule.
func keyframesName(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.IdentToken:
			return string(t.Data)
		case css.StringToken:
			return unquote(string(t.Data))
		}
	}
	return ""
}

// splitSelectors builds the prelude of a ruleset and splits it on commas.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for _, s := range strings.Split(sb.String(), ",") {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// joinTokens rebuilds a value from its tokens, collapsing whitespace.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

func stripImportant(v string) string {
	lower := strings.ToLower(v)
	if i := strings.LastIndex(lower, "!"); i >= 0 && strings.TrimSpace(lower[i+1:]) == "important" {
		return strings.TrimSpace(v[:i])
	}
	return v
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
