package formula

// LexSuccess reports whether text tokenizes as a syntactically valid
// formula, without resolving any reference against an IdFetcher — the
// same "syntax only, no identity resolution" check spec.md §6's
// lex_success exposes at the Workbook façade, grounded on
// original_source's lib.rs `lex_success` (`lexer::lex(f).is_some()`).
func LexSuccess(text string) bool {
	_, err := newLexer(text).tokenize()
	return err == nil
}
