// Package highlight provides rule-based syntax highlighting.
//
// A RuleSet is an ordered list of anchored patterns. Scanning a text slice
// tries every rule at the current position and the first non-empty match
// wins; the final rule is a catch-all that consumes one code point, so the
// scan always advances. The Highlighter paints the resulting tokens onto a
// document as foreground colors, either for the whole document or for the
// line under the cursor.
package highlight

import (
	"fmt"
	"strings"
)

// TokenType represents the kind of a token.
type TokenType uint8

// Token types. HTML uses TokenTagName, TokenAttributeName,
// TokenAttributeValue and TokenText together with the shared delimiter,
// whitespace and unknown kinds.
const (
	TokenUnknown TokenType = iota
	TokenWhitespace
	TokenComment
	TokenNumber
	TokenString
	TokenOperator
	TokenDoubleCharOperator
	TokenDelimiter
	TokenIdentifier
	TokenKeyword
	TokenFunctionName
	TokenPreprocessor

	// HTML
	TokenTagName
	TokenAttributeName
	TokenAttributeValue
	TokenText

	// Sentinel for iteration
	tokenTypeCount
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	TokenUnknown:            "unknown",
	TokenWhitespace:         "whitespace",
	TokenComment:            "comment",
	TokenNumber:             "number",
	TokenString:             "string",
	TokenOperator:           "operator",
	TokenDoubleCharOperator: "double_char_operator",
	TokenDelimiter:          "delimiter",
	TokenIdentifier:         "identifier",
	TokenKeyword:            "keyword",
	TokenFunctionName:       "function_name",
	TokenPreprocessor:       "preprocessor",
	TokenTagName:            "tag_name",
	TokenAttributeName:      "attribute_name",
	TokenAttributeValue:     "attribute_value",
	TokenText:               "text",
}

// tokenTypeAliases are extra spellings accepted by ParseTokenType, mostly
// the short names used by older settings files.
var tokenTypeAliases = map[string]TokenType{
	"delim":      TokenDelimiter,
	"function":   TokenFunctionName,
	"func":       TokenFunctionName,
	"preproc":    TokenPreprocessor,
	"tag":        TokenTagName,
	"attribute":  TokenAttributeName,
	"attr_name":  TokenAttributeName,
	"attr_value": TokenAttributeValue,
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// AllTokenTypes returns every token type in declaration order.
func AllTokenTypes() []TokenType {
	types := make([]TokenType, 0, tokenTypeCount)
	for t := TokenUnknown; t < tokenTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// ParseTokenType parses a token type name. It accepts the canonical names
// ("comment", "double_char_operator"), the "TokenType.COMMENT" spelling of
// legacy color schemes, and dash or space separated variants.
func ParseTokenType(s string) (TokenType, error) {
	name := strings.TrimSpace(s)
	if len(name) > len("TokenType.") && strings.EqualFold(name[:len("TokenType.")], "TokenType.") {
		name = name[len("TokenType."):]
	}
	name = strings.ToLower(name)
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)

	for t, n := range tokenTypeNames {
		if n == name {
			return TokenType(t), nil
		}
	}
	if t, ok := tokenTypeAliases[name]; ok {
		return t, nil
	}
	return TokenUnknown, fmt.Errorf("unknown token type %q", s)
}

// Token is a classified span of text.
// Start and End are code-point offsets; the span is half-open.
type Token struct {
	Type  TokenType
	Start int
	End   int
	Text  string
}

// Len returns the token length in code points.
func (t Token) Len() int {
	return t.End - t.Start
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]%q", t.Type, t.Start, t.End, t.Text)
}
