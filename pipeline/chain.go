package pipeline

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// StageSpec is one parsed link of a stage chain: a stage name plus its
// key=value options, e.g. "prune,k=10" -> {Name: "prune", Options:
// {"k": "10"}}. Spec.md §6's CLI surface chains stages with "+" and
// delimits a stage's own options with ",".
type StageSpec struct {
	Name    string
	Options map[string]string
}

// Int looks up an option by key and parses it as an int, returning def
// if the key is absent or unparsable.
func (s StageSpec) Int(key string, def int) int {
	v, ok := s.Options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Float looks up an option by key and parses it as a float64, returning
// def if the key is absent or unparsable.
func (s StageSpec) Float(key string, def float64) float64 {
	v, ok := s.Options[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// chainLexer tokenizes a "stage,key=value,key=value+stage+..." chain
// string, grounded on ritamzico-pgraph's small-DSL lexer style (also
// used by rule.ruleLexer).
var chainLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Plus", Pattern: `\+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Ident", Pattern: `[^\s,=+]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type chainAST struct {
	Stages []*stageAST `parser:"@@ (Plus @@)*"`
}

type stageAST struct {
	Name    string       `parser:"@Ident"`
	Options []*optionAST `parser:"(Comma @@)*"`
}

type optionAST struct {
	Key   string `parser:"@Ident"`
	Value string `parser:"\"=\" @Ident"`
}

var chainParser = participle.MustBuild[chainAST](participle.Lexer(chainLexer), participle.Elide("Whitespace"))

// ParseChain parses spec.md §6's "stage,key=value+stage,key=value" chain
// string into an ordered list of StageSpecs. It does not validate stage
// names against any known set; callers (typically a BuildChain-style
// factory) are expected to return ErrUnknownStage for a name they don't
// recognize.
func ParseChain(text string) ([]StageSpec, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	ast, err := chainParser.ParseString("", text)
	if err != nil {
		return nil, wrapChainErr(err)
	}

	specs := make([]StageSpec, len(ast.Stages))
	for i, st := range ast.Stages {
		spec := StageSpec{Name: st.Name}
		if len(st.Options) > 0 {
			spec.Options = make(map[string]string, len(st.Options))
			for _, opt := range st.Options {
				spec.Options[opt.Key] = opt.Value
			}
		}
		specs[i] = spec
	}
	return specs, nil
}

// BuildResourceFreeStage constructs the Stage for spec when its stage
// needs no external grammar, model or weights to build: "debinarize",
// "permute" (reading a "max_span" option, default 4) and "output"
// (appending to lines). Every other stage name (compose-phrase,
// compose-tree, parse-cky, parse-tree, apply, prune, push-weights-root,
// push-head) requires resources a chain string alone cannot carry, and
// returns ErrUnknownStage here — callers build those themselves and
// splice them into the chain by position.
func BuildResourceFreeStage(spec StageSpec, lines *[]string) (Stage, error) {
	switch spec.Name {
	case "debinarize":
		return &DebinarizeStage{}, nil
	case "permute":
		return &PermuteStage{MaxSpan: spec.Int("max_span", 4)}, nil
	case "output":
		return &OutputStage{Lines: lines}, nil
	default:
		return nil, ErrUnknownStage
	}
}

func wrapChainErr(err error) error {
	return &chainParseError{inner: err}
}

type chainParseError struct{ inner error }

func (e *chainParseError) Error() string { return ErrChainParse.Error() + ": " + e.inner.Error() }
func (e *chainParseError) Unwrap() error { return ErrChainParse }
