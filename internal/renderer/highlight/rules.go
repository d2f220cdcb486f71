package highlight

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"unicode/utf8"
)

// Configuration errors. A rule set that fails validation must not be used
// for highlighting.
var (
	// ErrMissingCatchAll indicates the rule set does not end with an
	// unknown rule matching any single code point.
	ErrMissingCatchAll = errors.New("rule set must end with a catch-all unknown rule")

	// ErrNoHighlighting indicates the language has highlighting disabled.
	ErrNoHighlighting = errors.New("highlighting disabled for language")

	// ErrMissingKeywords indicates a declared language has no keyword list.
	ErrMissingKeywords = errors.New("missing keyword list")
)

// catchAllProbes are the inputs the final rule must match to count as a
// catch-all.
var catchAllProbes = []string{"a", "0", " ", "\t", "\n", "é", "\x00", "\xff"}

// Rule defines a highlighting rule.
type Rule struct {
	// Type is the type to assign to matches.
	Type TokenType

	// Pattern is the regex pattern to match. It is anchored at the scan
	// position.
	Pattern *regexp.Regexp

	// Submatch is the submatch index to use (0 for whole match).
	// The submatch must start at the scan position; text matched after it
	// acts as required trailing context and is not consumed.
	Submatch int
}

// NewRule compiles pattern into a rule anchored at the scan position.
func NewRule(t TokenType, pattern string, submatch int) (Rule, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", t, err)
	}
	if submatch < 0 || submatch > re.NumSubexp() {
		return Rule{}, fmt.Errorf("rule %s: submatch %d out of range (pattern has %d groups)",
			t, submatch, re.NumSubexp())
	}
	return Rule{Type: t, Pattern: re, Submatch: submatch}, nil
}

// MustRule is like NewRule but panics on error.
// It is meant for the built-in rule tables.
func MustRule(t TokenType, pattern string, submatch int) Rule {
	r, err := NewRule(t, pattern, submatch)
	if err != nil {
		panic(err)
	}
	return r
}

// CatchAllRule returns the terminal unknown rule.
func CatchAllRule() Rule {
	return MustRule(TokenUnknown, `(?s).`, 0)
}

// match returns the byte length of the rule's match at the start of s,
// or 0 when the rule does not apply.
func (r Rule) match(s string) int {
	loc := r.Pattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return 0
	}
	if r.Submatch == 0 {
		return loc[1]
	}
	start, end := loc[2*r.Submatch], loc[2*r.Submatch+1]
	if start != 0 || end <= 0 {
		return 0
	}
	return end
}

// RuleSet is an ordered, immutable list of rules for one language.
// Earlier rules take priority.
type RuleSet struct {
	language string
	rules    []Rule
}

// NewRuleSet validates rules and returns a rule set.
// The last rule must be a TokenUnknown rule that matches any single code
// point, newline included; otherwise ErrMissingCatchAll is returned.
func NewRuleSet(language string, rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s: %w", language, ErrMissingCatchAll)
	}
	for i, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("%s: rule %d (%s) has no pattern", language, i, r.Type)
		}
		if r.Submatch < 0 || r.Submatch > r.Pattern.NumSubexp() {
			return nil, fmt.Errorf("%s: rule %d (%s): submatch %d out of range", language, i, r.Type, r.Submatch)
		}
	}

	last := rules[len(rules)-1]
	if last.Type != TokenUnknown {
		return nil, fmt.Errorf("%s: %w", language, ErrMissingCatchAll)
	}
	for _, probe := range catchAllProbes {
		if last.match(probe) == 0 {
			return nil, fmt.Errorf("%s: %w (does not match %q)", language, ErrMissingCatchAll, probe)
		}
	}

	return &RuleSet{
		language: language,
		rules:    slices.Clone(rules),
	}, nil
}

// Language returns the name the rule set was built for.
func (rs *RuleSet) Language() string {
	return rs.language
}

// Rules returns a copy of the rules in priority order.
func (rs *RuleSet) Rules() []Rule {
	return slices.Clone(rs.rules)
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match tries each rule at byte offset off of text and returns the type and
// byte length of the first non-empty match. A zero length means off is at
// the end of text.
func (rs *RuleSet) Match(text string, off int) (TokenType, int) {
	if off < 0 || off >= len(text) {
		return TokenUnknown, 0
	}
	rest := text[off:]
	for _, r := range rs.rules {
		if n := r.match(rest); n > 0 {
			return r.Type, n
		}
	}
	return TokenUnknown, 0
}

// Tokens returns a lazy sequence of the tokens of text. Token offsets are
// code-point offsets starting at base. An empty text yields nothing.
func (rs *RuleSet) Tokens(text string, base int) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pos := base
		for off := 0; off < len(text); {
			typ, n := rs.Match(text, off)
			if n == 0 {
				// Unreachable for a validated rule set.
				return
			}
			chunk := text[off : off+n]
			runes := utf8.RuneCountInString(chunk)
			if !yield(Token{Type: typ, Start: pos, End: pos + runes, Text: chunk}) {
				return
			}
			off += n
			pos += runes
		}
	}
}

// Tokenize returns all tokens of text. See Tokens.
func (rs *RuleSet) Tokenize(text string, base int) []Token {
	return slices.Collect(rs.Tokens(text, base))
}
