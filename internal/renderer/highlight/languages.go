package highlight

import (
	"cmp"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Language identifies a built-in language.
type Language uint8

// Built-in languages. LanguageUnknown disables highlighting.
const (
	LanguageUnknown Language = iota
	LanguagePython
	LanguageC
	LanguageCPP
	LanguageJavaScript
	LanguageJava
	LanguageGo
	LanguageHTML
)

var languageNames = [...]string{
	LanguageUnknown:    "unknown",
	LanguagePython:     "python",
	LanguageC:          "c",
	LanguageCPP:        "c++",
	LanguageJavaScript: "javascript",
	LanguageJava:       "java",
	LanguageGo:         "go",
	LanguageHTML:       "html",
}

var languageAliases = map[string]Language{
	"py":     LanguagePython,
	"cpp":    LanguageCPP,
	"cxx":    LanguageCPP,
	"js":     LanguageJavaScript,
	"golang": LanguageGo,
	"htm":    LanguageHTML,
}

var languageExtensions = map[string]Language{
	".py":   LanguagePython,
	".pyw":  LanguagePython,
	".c":    LanguageC,
	".h":    LanguageC,
	".cpp":  LanguageCPP,
	".cc":   LanguageCPP,
	".cxx":  LanguageCPP,
	".hpp":  LanguageCPP,
	".hh":   LanguageCPP,
	".js":   LanguageJavaScript,
	".mjs":  LanguageJavaScript,
	".cjs":  LanguageJavaScript,
	".java": LanguageJava,
	".go":   LanguageGo,
	".html": LanguageHTML,
	".htm":  LanguageHTML,
}

// String returns the language tag.
func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return "unknown"
}

// ParseLanguage resolves a language tag such as "python" or "c++".
// Unrecognized tags resolve to LanguageUnknown.
func ParseLanguage(tag string) Language {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for l, name := range languageNames {
		if name == tag {
			return Language(l)
		}
	}
	if l, ok := languageAliases[tag]; ok {
		return l
	}
	return LanguageUnknown
}

// LanguageForExtension resolves a file extension, with or without the
// leading dot.
func LanguageForExtension(ext string) Language {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return languageExtensions[ext]
}

// LanguageForPath resolves the language of a file path from its extension.
func LanguageForPath(path string) Language {
	return LanguageForExtension(filepath.Ext(path))
}

// Keyword terminators: the character after a keyword must be one of these
// (or the end of the text) for the keyword rule to match.
const (
	blockTerminators = `[\s:),\]]`
	cTerminators     = `[\s;:(){}\[\],.]`
)

// Definition describes how to build the rule set of a language.
type Definition struct {
	// Name is the language tag.
	Name string

	// Extensions lists file extensions, with leading dot.
	Extensions []string

	// CommentPrefix starts a line comment ("#" or "//").
	CommentPrefix string

	// BlockComments enables single-line /* ... */ comments.
	BlockComments bool

	// Preprocessor enables the "#directive" rule.
	Preprocessor bool

	// RawStrings enables backquoted strings.
	RawStrings bool

	// Terminators is the character class allowed after a keyword.
	Terminators string

	// Keywords is the reserved-word list.
	Keywords []string

	// Extra rules are tried right before the identifier rule.
	Extra []Rule

	// Rules, when set, is used verbatim instead of the generated list.
	Rules []Rule
}

var definitions = map[Language]Definition{
	LanguagePython: {
		Name:          "python",
		CommentPrefix: "#",
		Terminators:   blockTerminators,
		Keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "class", "continue", "def", "del", "elif", "else", "except",
			"finally", "for", "from", "global", "if", "import", "in", "is",
			"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield",
		},
	},
	LanguageC: {
		Name:          "c",
		CommentPrefix: "//",
		BlockComments: true,
		Preprocessor:  true,
		Terminators:   cTerminators,
		Keywords: []string{
			"auto", "break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "extern", "float", "for", "goto", "if",
			"inline", "int", "long", "register", "restrict", "return", "short",
			"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
			"unsigned", "void", "volatile", "while",
		},
	},
	LanguageCPP: {
		Name:          "c++",
		CommentPrefix: "//",
		BlockComments: true,
		Preprocessor:  true,
		Terminators:   cTerminators,
		Keywords: []string{
			"auto", "bool", "break", "case", "catch", "char", "class", "const",
			"constexpr", "continue", "default", "delete", "do", "double", "else",
			"enum", "explicit", "extern", "false", "float", "for", "friend",
			"goto", "if", "inline", "int", "long", "mutable", "namespace", "new",
			"noexcept", "nullptr", "operator", "private", "protected", "public",
			"return", "short", "signed", "sizeof", "static", "struct", "switch",
			"template", "this", "throw", "true", "try", "typedef", "typename",
			"union", "unsigned", "using", "virtual", "void", "volatile", "while",
		},
	},
	LanguageJavaScript: {
		Name:          "javascript",
		CommentPrefix: "//",
		BlockComments: true,
		RawStrings:    true,
		Terminators:   cTerminators,
		Keywords: []string{
			"async", "await", "break", "case", "catch", "class", "const",
			"continue", "debugger", "default", "delete", "do", "else", "export",
			"extends", "false", "finally", "for", "function", "if", "import",
			"in", "instanceof", "let", "new", "null", "return", "super",
			"switch", "this", "throw", "true", "try", "typeof", "undefined",
			"var", "void", "while", "with", "yield",
		},
	},
	LanguageJava: {
		Name:          "java",
		CommentPrefix: "//",
		BlockComments: true,
		Terminators:   cTerminators,
		Keywords: []string{
			"abstract", "assert", "boolean", "break", "byte", "case", "catch",
			"char", "class", "const", "continue", "default", "do", "double",
			"else", "enum", "extends", "false", "final", "finally", "float",
			"for", "goto", "if", "implements", "import", "instanceof", "int",
			"interface", "long", "native", "new", "null", "package", "private",
			"protected", "public", "return", "short", "static", "super",
			"switch", "synchronized", "this", "throw", "throws", "transient",
			"true", "try", "void", "volatile", "while",
		},
	},
	LanguageGo: {
		Name:          "go",
		CommentPrefix: "//",
		BlockComments: true,
		RawStrings:    true,
		Terminators:   cTerminators,
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var", "true", "false", "nil",
		},
	},
}

func init() {
	for ext, l := range languageExtensions {
		if d, ok := definitions[l]; ok {
			d.Extensions = append(d.Extensions, ext)
			slices.Sort(d.Extensions)
			definitions[l] = d
		}
	}
}

// DefaultKeywords returns a copy of the built-in keyword list of lang.
func DefaultKeywords(lang Language) []string {
	return slices.Clone(definitions[lang].Keywords)
}

// DefinitionFor returns the built-in definition of lang.
func DefinitionFor(lang Language) (Definition, bool) {
	d, ok := definitions[lang]
	if ok {
		d.Keywords = slices.Clone(d.Keywords)
		d.Extensions = slices.Clone(d.Extensions)
	}
	return d, ok
}

// RulesFor builds the rule set of lang with the given keywords. A nil
// keyword list selects the built-in one.
//
// LanguageUnknown returns ErrNoHighlighting. A language whose keyword list
// ends up empty returns ErrMissingKeywords. HTML ignores keywords.
func RulesFor(lang Language, keywords []string) (*RuleSet, error) {
	switch lang {
	case LanguageUnknown:
		return nil, ErrNoHighlighting
	case LanguageHTML:
		return HTMLRules()
	}

	d, ok := definitions[lang]
	if !ok {
		return nil, fmt.Errorf("%s: %w", lang, ErrNoHighlighting)
	}
	if keywords != nil {
		d.Keywords = keywords
	}
	return d.RuleSet()
}

// RuleSet builds the rule set described by d.
//
// Priority order: whitespace, preprocessor, comment, string, number,
// double-char operator, operator, keyword, function name, delimiter,
// extra rules, identifier, unknown.
func (d Definition) RuleSet() (*RuleSet, error) {
	if d.Rules != nil {
		return NewRuleSet(d.Name, d.Rules...)
	}
	if len(d.Keywords) == 0 {
		return nil, fmt.Errorf("%s: %w", d.Name, ErrMissingKeywords)
	}

	kw, err := keywordRule(d.Keywords, cmp.Or(d.Terminators, blockTerminators))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	rules := []Rule{MustRule(TokenWhitespace, `\s+`, 0)}
	if d.Preprocessor {
		rules = append(rules, MustRule(TokenPreprocessor, `#[^\n]*`, 0))
	}
	if d.CommentPrefix != "" {
		rules = append(rules, MustRule(TokenComment, regexp.QuoteMeta(d.CommentPrefix)+`[^\n]*`, 0))
	}
	if d.BlockComments {
		rules = append(rules, MustRule(TokenComment, `/\*.*?\*/`, 0))
	}
	rules = append(rules,
		MustRule(TokenString, `"(?:[^"\\\n]|\\.)*"`, 0),
		MustRule(TokenString, `'(?:[^'\\\n]|\\.)*'`, 0),
	)
	if d.RawStrings {
		rules = append(rules, MustRule(TokenString, "`[^`]*`", 0))
	}
	rules = append(rules,
		MustRule(TokenNumber, `0[xX][0-9A-Fa-f_]+|\d[\d_]*(?:\.\d+)?(?:[eE][+-]?\d+)?`, 0),
		MustRule(TokenDoubleCharOperator, `==|!=|<=|>=|<>|<<|>>|//|\*\*|\+=|-=|\*=|%=|/=|\|=|\^=|&=|&&|\|\||\+\+|--|->|:=`, 0),
		MustRule(TokenOperator, `[+\-*/%|^&~<>!=?]`, 0),
		kw,
		MustRule(TokenFunctionName, `([_\pL][_\pL\pN]*)\(`, 1),
		MustRule(TokenDelimiter, "[()\\[\\]{}@,:`;.]", 0),
	)
	rules = append(rules, d.Extra...)
	rules = append(rules,
		MustRule(TokenIdentifier, `[_\pL][_\pL\pN]*`, 0),
		CatchAllRule(),
	)

	return NewRuleSet(d.Name, rules...)
}

// keywordRule builds the keyword alternation. Longer words come first and
// a terminator (or the end of the text) must follow, so "iffy" is never
// read as "if" followed by "fy".
func keywordRule(keywords []string, terminators string) (Rule, error) {
	words := make([]string, 0, len(keywords))
	for _, w := range keywords {
		w = strings.TrimSpace(w)
		if w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) == 0 {
		return Rule{}, ErrMissingKeywords
	}
	slices.SortFunc(words, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	})
	words = slices.Compact(words)

	return NewRule(TokenKeyword, `(`+strings.Join(words, "|")+`)(?:`+terminators+`|$)`, 1)
}
