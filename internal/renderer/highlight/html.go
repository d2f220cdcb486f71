package highlight

// HTMLRules returns the HTML rule set. The rules are stateless: an
// attribute name is a name directly followed by "=", and anything between
// tags that is not markup is text.
func HTMLRules() (*RuleSet, error) {
	return NewRuleSet(LanguageHTML.String(),
		MustRule(TokenWhitespace, `\s+`, 0),
		MustRule(TokenTagName, `</?!?[A-Za-z][\w-]*`, 0),
		MustRule(TokenDelimiter, `/>|>|=`, 0),
		MustRule(TokenAttributeValue, `"[^"]*"|'[^']*'`, 0),
		MustRule(TokenAttributeName, `([A-Za-z_:][\w:.-]*)\s*=`, 1),
		MustRule(TokenText, `[^<>\s="']+`, 0),
		CatchAllRule(),
	)
}
