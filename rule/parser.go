package rule

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/synforest/symbol"
)

// ruleLexer tokenizes the space-separated symbol and feature fields of a
// rule line, grounded on ritamzico-pgraph's small-DSL lexer
// (dsl.dslLexer): a handful of SimpleRule regexes with whitespace elided.
var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "NonTerminal", Pattern: `\[[^\[\]]*\]`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Ident", Pattern: `[^\s=\[\]]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type symbolSeqAST struct {
	Tokens []string `parser:"@(NonTerminal|Ident)*"`
}

type featureListAST struct {
	Items []*featureItemAST `parser:"@@*"`
}

type featureItemAST struct {
	Name  string  `parser:"@Ident"`
	Value float64 `parser:"\"=\" @Number"`
}

var (
	symbolSeqParser  = participle.MustBuild[symbolSeqAST](participle.Lexer(ruleLexer), participle.Elide("Whitespace"))
	featureListParser = participle.MustBuild[featureListAST](participle.Lexer(ruleLexer), participle.Elide("Whitespace"))
)

// parseSymbolSeq tokenizes a space-separated sequence of terminals and
// "[CAT]"/"[CAT,k]" non-terminals.
func parseSymbolSeq(text string) ([]symbol.Symbol, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	ast, err := symbolSeqParser.ParseString("", text)
	if err != nil {
		return nil, wrapParseErr(err)
	}
	out := make([]symbol.Symbol, len(ast.Tokens))
	for i, tok := range ast.Tokens {
		out[i] = symbol.Intern(tok)
	}
	return out, nil
}

// parseFeatures tokenizes a space-separated "name=value" feature list.
func parseFeatures(text string) (map[string]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	ast, err := featureListParser.ParseString("", text)
	if err != nil {
		return nil, wrapParseErr(err)
	}
	out := make(map[string]float64, len(ast.Items))
	for _, item := range ast.Items {
		out[item.Name] = item.Value
	}
	return out, nil
}

func wrapParseErr(err error) error {
	return &parseError{inner: err}
}

type parseError struct{ inner error }

func (e *parseError) Error() string { return ErrRuleParse.Error() + ": " + e.inner.Error() }
func (e *parseError) Unwrap() error { return ErrRuleParse }

// ParseRuleLine parses one line of the rule textual format (spec.md §6):
//
//	LHS ||| rhs                              (single-side, no features)
//	LHS ||| rhs ||| feat=value ...            (single-side, with features)
//	LHS ||| source-rhs ||| target-rhs         (source-target pair, no features)
//	LHS ||| source-rhs ||| target-rhs ||| feat=value ...
//
// The RHS becomes the returned Rule's RHS (target side, for a pair); the
// returned rule has already been passed through Intern.
func ParseRuleLine(line string) (*Rule, error) {
	fields := strings.Split(line, "|||")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 2 {
		return nil, ErrRuleParse
	}

	lhsSyms, err := parseSymbolSeq(fields[0])
	if err != nil || len(lhsSyms) != 1 {
		return nil, ErrRuleParse
	}
	lhs := lhsSyms[0]

	r := &Rule{LHS: lhs}

	switch len(fields) {
	case 2:
		r.RHS, err = parseSymbolSeq(fields[1])
		if err != nil {
			return nil, err
		}
	case 3:
		// Disambiguate "rhs ||| features" from "source ||| target" by
		// whether the third field looks like a "name=value" list.
		if strings.Contains(fields[2], "=") {
			r.RHS, err = parseSymbolSeq(fields[1])
			if err != nil {
				return nil, err
			}
			r.Features, err = parseFeatures(fields[2])
			if err != nil {
				return nil, err
			}
		} else {
			r.Source, err = parseSymbolSeq(fields[1])
			if err != nil {
				return nil, err
			}
			r.RHS, err = parseSymbolSeq(fields[2])
			if err != nil {
				return nil, err
			}
		}
	default:
		r.Source, err = parseSymbolSeq(fields[1])
		if err != nil {
			return nil, err
		}
		r.RHS, err = parseSymbolSeq(fields[2])
		if err != nil {
			return nil, err
		}
		r.Features, err = parseFeatures(strings.Join(fields[3:], " "))
		if err != nil {
			return nil, err
		}
	}

	return Intern(r), nil
}
