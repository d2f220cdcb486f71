package highlight

import (
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{TokenUnknown, "unknown"},
		{TokenWhitespace, "whitespace"},
		{TokenComment, "comment"},
		{TokenDoubleCharOperator, "double_char_operator"},
		{TokenFunctionName, "function_name"},
		{TokenAttributeValue, "attribute_value"},
		{tokenTypeCount, "TokenType(16)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.expected {
				t.Errorf("TokenType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseTokenType(t *testing.T) {
	tests := []struct {
		input   string
		want    TokenType
		wantErr bool
	}{
		{"comment", TokenComment, false},
		{"TokenType.COMMENT", TokenComment, false},
		{"TokenType.DOUBLE_CHAR_OPERATOR", TokenDoubleCharOperator, false},
		{"TokenType.DELIM", TokenDelimiter, false},
		{"function-name", TokenFunctionName, false},
		{" Keyword ", TokenKeyword, false},
		{"attribute value", TokenAttributeValue, false},
		{"TokenType.", TokenUnknown, true},
		{"sparkle", TokenUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTokenType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTokenType(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTokenType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTokenType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTokenTypeRoundTrip(t *testing.T) {
	for _, tt := range AllTokenTypes() {
		got, err := ParseTokenType(tt.String())
		if err != nil || got != tt {
			t.Errorf("ParseTokenType(%q) = %v, %v; want %v", tt.String(), got, err, tt)
		}
	}
}

func TestToken(t *testing.T) {
	tok := Token{Type: TokenKeyword, Start: 4, End: 6, Text: "if"}
	if tok.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tok.Len())
	}
	if tok.String() != `keyword[4:6]"if"` {
		t.Errorf("String() = %s", tok.String())
	}
}
