package highlight

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
	}{
		{"python", LanguagePython},
		{"Python", LanguagePython},
		{"c", LanguageC},
		{"c++", LanguageCPP},
		{"cpp", LanguageCPP},
		{"javascript", LanguageJavaScript},
		{"js", LanguageJavaScript},
		{"java", LanguageJava},
		{"go", LanguageGo},
		{"html", LanguageHTML},
		{"unknown", LanguageUnknown},
		{"cobol", LanguageUnknown},
		{"", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseLanguage(tt.tag); got != tt.want {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestLanguageForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
	}{
		{".py", LanguagePython},
		{"py", LanguagePython},
		{".H", LanguageC},
		{".hpp", LanguageCPP},
		{".mjs", LanguageJavaScript},
		{".java", LanguageJava},
		{".go", LanguageGo},
		{".htm", LanguageHTML},
		{".txt", LanguageUnknown},
		{"", LanguageUnknown},
	}

	for _, tt := range tests {
		if got := LanguageForExtension(tt.ext); got != tt.want {
			t.Errorf("LanguageForExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}

	if got := LanguageForPath("/src/pkg/main.go"); got != LanguageGo {
		t.Errorf("LanguageForPath = %v, want go", got)
	}
}

func TestRulesForErrors(t *testing.T) {
	if _, err := RulesFor(LanguageUnknown, nil); !errors.Is(err, ErrNoHighlighting) {
		t.Errorf("unknown language: expected ErrNoHighlighting, got %v", err)
	}
	if _, err := RulesFor(LanguagePython, []string{}); !errors.Is(err, ErrMissingKeywords) {
		t.Errorf("empty keywords: expected ErrMissingKeywords, got %v", err)
	}
	if _, err := RulesFor(LanguageJava, []string{" ", ""}); !errors.Is(err, ErrMissingKeywords) {
		t.Errorf("blank keywords: expected ErrMissingKeywords, got %v", err)
	}
	if _, err := RulesFor(LanguageHTML, []string{}); err != nil {
		t.Errorf("html ignores keywords, got %v", err)
	}
}

func TestDefaultKeywordsIsACopy(t *testing.T) {
	kw := DefaultKeywords(LanguagePython)
	if len(kw) == 0 {
		t.Fatal("python should have keywords")
	}
	kw[0] = "changed"
	if DefaultKeywords(LanguagePython)[0] == "changed" {
		t.Error("DefaultKeywords must return a copy")
	}
	if DefaultKeywords(LanguageUnknown) != nil {
		t.Error("unknown language has no keywords")
	}
}

func TestDefinitionForExtensions(t *testing.T) {
	d, ok := DefinitionFor(LanguageC)
	if !ok {
		t.Fatal("expected a C definition")
	}
	if len(d.Extensions) != 2 || d.Extensions[0] != ".c" || d.Extensions[1] != ".h" {
		t.Errorf("C extensions = %v, want [.c .h]", d.Extensions)
	}
}

func TestPythonTokens(t *testing.T) {
	rs, err := RulesFor(LanguagePython, nil)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}

	W, C, N, S := TokenWhitespace, TokenComment, TokenNumber, TokenString
	O, D, P := TokenOperator, TokenDoubleCharOperator, TokenDelimiter
	I, K, F, U := TokenIdentifier, TokenKeyword, TokenFunctionName, TokenUnknown

	tests := []struct {
		text string
		want []TokenType
	}{
		{"if x:", []TokenType{K, W, I, P}},
		{"ifx = 1", []TokenType{I, W, O, W, N}},
		{"iffy", []TokenType{I}},
		{"else:", []TokenType{K, P}},
		{"print(x)", []TokenType{F, P, I, P}},
		{"a == b # c", []TokenType{I, W, D, W, I, W, C}},
		{`"hi" 42`, []TokenType{S, W, N}},
		{"x **= 2", []TokenType{I, W, D, O, W, N}},
		{"$", []TokenType{U}},
		{"return", []TokenType{K}},
		{"# only a comment", []TokenType{C}},
		{"f(None)", []TokenType{F, P, K, P}},
		{"x = True,", []TokenType{I, W, O, W, K, P}},
		{"[False]", []TokenType{P, K, P}},
		{"if(x)", []TokenType{F, P, I, P}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := kinds(rs, tt.text); !equalKinds(got, tt.want) {
				t.Errorf("tokens of %q = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCFamilyTokens(t *testing.T) {
	W, C, N, S := TokenWhitespace, TokenComment, TokenNumber, TokenString
	O, D, P := TokenOperator, TokenDoubleCharOperator, TokenDelimiter
	I, K, F, X := TokenIdentifier, TokenKeyword, TokenFunctionName, TokenPreprocessor

	tests := []struct {
		lang Language
		text string
		want []TokenType
	}{
		{LanguageC, "#include <stdio.h>", []TokenType{X}},
		{LanguageC, "int main(void) {", []TokenType{K, W, F, P, K, P, W, P}},
		{LanguageC, "x->y", []TokenType{I, D, I}},
		{LanguageC, "/* a */ b", []TokenType{C, W, I}},
		{LanguageCPP, "return;", []TokenType{K, P}},
		{LanguageJava, "// note", []TokenType{C}},
		{LanguageJavaScript, "let s = 'a'", []TokenType{K, W, I, W, O, W, S}},
		{LanguageGo, "x := `raw`", []TokenType{I, W, D, W, S}},
		{LanguageGo, "for i < 0x1F {", []TokenType{K, W, I, W, O, W, N, W, P}},
		{LanguageGo, "format", []TokenType{I}},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String()+"/"+tt.text, func(t *testing.T) {
			rs, err := RulesFor(tt.lang, nil)
			if err != nil {
				t.Fatalf("RulesFor failed: %v", err)
			}
			if got := kinds(rs, tt.text); !equalKinds(got, tt.want) {
				t.Errorf("tokens of %q = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCustomKeywords(t *testing.T) {
	rs, err := RulesFor(LanguagePython, []string{"spam"})
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}
	got := kinds(rs, "spam if")
	want := []TokenType{TokenKeyword, TokenWhitespace, TokenIdentifier}
	if !equalKinds(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestHTMLTokens(t *testing.T) {
	rs, err := RulesFor(LanguageHTML, nil)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}

	got := rs.Tokenize(`<a href="x">hi</a>`, 0)
	want := []struct {
		typ  TokenType
		text string
	}{
		{TokenTagName, "<a"},
		{TokenWhitespace, " "},
		{TokenAttributeName, "href"},
		{TokenDelimiter, "="},
		{TokenAttributeValue, `"x"`},
		{TokenDelimiter, ">"},
		{TokenText, "hi"},
		{TokenTagName, "</a"},
		{TokenDelimiter, ">"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i].Type != want[i].typ || got[i].Text != want[i].text {
			t.Errorf("token %d = %v, want %v %q", i, got[i], want[i].typ, want[i].text)
		}
	}
}
