package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType defines the type of lexical tokens.
type TokenType int

const (
	TokEOF        TokenType = iota // EOF
	TokNumber                      // 123, 3.14, 0xff
	TokString                      // "hello"
	TokTemplate                    // `a${b}c`
	TokIdentifier                  // foo, bar
	TokKeyword                     // if, function, ...
	TokPunct                       // operators and punctuation
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "EOF"
	case TokNumber:
		return "Number"
	case TokString:
		return "String"
	case TokTemplate:
		return "Template"
	case TokIdentifier:
		return "Identifier"
	case TokKeyword:
		return "Keyword"
	case TokPunct:
		return "Punct"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// Token represents a lexical token. Literal holds the decoded value for
// strings and the source text otherwise.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Col      int
	Template *templateParts
}

func (t Token) is(tt TokenType, lit string) bool {
	return t.Type == tt && t.Literal == lit
}

func (t Token) String() string {
	if t.Type == TokEOF {
		return "end of input"
	}
	return strconv.Quote(t.Literal)
}

// templateParts is the scanned form of a template literal: len(Cooked) ==
// len(Exprs)+1 and each Exprs[i] is the raw source between ${ and }.
type templateParts struct {
	Cooked   []string
	Raw      []string
	Exprs    []string
	ExprLine []int
	ExprCol  []int
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "new": true, "this": true, "true": true,
	"false": true, "null": true, "typeof": true, "void": true, "delete": true,
	// reserved: recognized so the parser can reject them clearly
	"while": true, "for": true, "do": true, "break": true, "continue": true,
	"switch": true, "case": true, "default": true, "try": true, "catch": true,
	"finally": true, "throw": true, "class": true, "extends": true, "super": true,
	"import": true, "export": true, "yield": true, "await": true, "in": true,
	"instanceof": true, "with": true, "debugger": true,
}

// punctuators sorted longest first so the scanner is greedy.
var punctuators = []string{
	">>>=",
	"===", "!==", "**=", "<<=", ">>=", ">>>", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// Tokenize splits input into tokens. The last token is always TokEOF.
func Tokenize(input string) ([]Token, error) {
	return tokenizeAt(input, 1, 1)
}

func tokenizeAt(input string, line, col int) ([]Token, error) {
	lx := &lexer{input: input, line: line, col: col}
	var tokens []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			return tokens, nil
		}
	}
}

func (lx *lexer) errorf(incomplete bool, format string, args ...interface{}) *Error {
	return &Error{Line: lx.line, Col: lx.col, Msg: fmt.Sprintf(format, args...), Incomplete: incomplete}
}

func (lx *lexer) peekByte(off int) byte {
	if lx.pos+off < len(lx.input) {
		return lx.input[lx.pos+off]
	}
	return 0
}

// advance consumes n bytes, keeping line and column current.
func (lx *lexer) advance(n int) {
	for i := 0; i < n && lx.pos < len(lx.input); i++ {
		if lx.input[lx.pos] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos++
	}
}

func (lx *lexer) skipSpaceAndComments() error {
	for lx.pos < len(lx.input) {
		ch := lx.input[lx.pos]
		switch {
		case isSpace(ch):
			lx.advance(1)
		case ch == '/' && lx.peekByte(1) == '/':
			for lx.pos < len(lx.input) && lx.input[lx.pos] != '\n' {
				lx.advance(1)
			}
		case ch == '/' && lx.peekByte(1) == '*':
			end := strings.Index(lx.input[lx.pos+2:], "*/")
			if end < 0 {
				lx.advance(len(lx.input) - lx.pos)
				return lx.errorf(true, "unterminated comment")
			}
			lx.advance(end + 4)
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (Token, error) {
	if err := lx.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	tok := Token{Line: lx.line, Col: lx.col}
	if lx.pos >= len(lx.input) {
		tok.Type = TokEOF
		return tok, nil
	}
	ch := lx.input[lx.pos]
	switch {
	case isDigit(ch) || (ch == '.' && isDigit(lx.peekByte(1))):
		tok.Type = TokNumber
		tok.Literal = lx.scanNumber()
		if lx.identLen(true) > 0 {
			return tok, lx.errorf(false, "identifier starts immediately after numeric literal")
		}
		return tok, nil
	case lx.identLen(true) > 0:
		start := lx.pos
		for n := lx.identLen(true); n > 0; n = lx.identLen(false) {
			lx.advance(n)
		}
		tok.Literal = lx.input[start:lx.pos]
		if keywords[tok.Literal] {
			tok.Type = TokKeyword
		} else {
			tok.Type = TokIdentifier
		}
		return tok, nil
	case ch == '"' || ch == '\'':
		s, err := lx.scanString(ch)
		tok.Type = TokString
		tok.Literal = s
		return tok, err
	case ch == '`':
		parts, err := lx.scanTemplate()
		tok.Type = TokTemplate
		tok.Template = parts
		tok.Literal = "`"
		return tok, err
	}
	for _, p := range punctuators {
		if strings.HasPrefix(lx.input[lx.pos:], p) {
			lx.advance(len(p))
			tok.Type = TokPunct
			tok.Literal = p
			return tok, nil
		}
	}
	r, _ := utf8.DecodeRuneInString(lx.input[lx.pos:])
	return tok, lx.errorf(false, "unexpected character %q", r)
}

func (lx *lexer) scanNumber() string {
	start := lx.pos
	if lx.input[lx.pos] == '0' {
		switch lx.peekByte(1) {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			lx.advance(2)
			for lx.pos < len(lx.input) && isHexDigit(lx.input[lx.pos]) {
				lx.advance(1)
			}
			return lx.input[start:lx.pos]
		}
	}
	for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
		lx.advance(1)
	}
	if lx.peekByte(0) == '.' {
		lx.advance(1)
		for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
			lx.advance(1)
		}
	}
	if c := lx.peekByte(0); c == 'e' || c == 'E' {
		n := 1
		if s := lx.peekByte(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(lx.peekByte(n)) {
			lx.advance(n)
			for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
				lx.advance(1)
			}
		}
	}
	return lx.input[start:lx.pos]
}

func (lx *lexer) scanString(quote byte) (string, error) {
	lx.advance(1)
	var sb strings.Builder
	for {
		if lx.pos >= len(lx.input) {
			return sb.String(), lx.errorf(true, "unterminated string")
		}
		ch := lx.input[lx.pos]
		switch {
		case ch == quote:
			lx.advance(1)
			return sb.String(), nil
		case ch == '\n':
			return sb.String(), lx.errorf(false, "unterminated string")
		case ch == '\\':
			if err := lx.scanEscape(&sb); err != nil {
				return sb.String(), err
			}
		default:
			sb.WriteByte(ch)
			lx.advance(1)
		}
	}
}

// scanEscape decodes one backslash escape into sb.
func (lx *lexer) scanEscape(sb *strings.Builder) error {
	lx.advance(1)
	if lx.pos >= len(lx.input) {
		return lx.errorf(true, "unterminated escape sequence")
	}
	ch := lx.input[lx.pos]
	lx.advance(1)
	switch ch {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		return lx.scanHexEscape(sb, 2)
	case 'u':
		if lx.peekByte(0) == '{' {
			end := strings.IndexByte(lx.input[lx.pos:], '}')
			if end < 0 {
				return lx.errorf(false, "invalid unicode escape")
			}
			code, err := strconv.ParseUint(lx.input[lx.pos+1:lx.pos+end], 16, 32)
			if err != nil || code > utf8.MaxRune {
				return lx.errorf(false, "invalid unicode escape")
			}
			sb.WriteRune(rune(code))
			lx.advance(end + 1)
			return nil
		}
		return lx.scanHexEscape(sb, 4)
	default:
		sb.WriteByte(ch)
	}
	return nil
}

func (lx *lexer) scanHexEscape(sb *strings.Builder, n int) error {
	if lx.pos+n > len(lx.input) {
		return lx.errorf(false, "invalid hex escape")
	}
	code, err := strconv.ParseUint(lx.input[lx.pos:lx.pos+n], 16, 32)
	if err != nil {
		return lx.errorf(false, "invalid hex escape")
	}
	sb.WriteRune(rune(code))
	lx.advance(n)
	return nil
}

// scanTemplate reads a template literal. Interpolated expressions are kept as
// source and parsed later; nested braces, strings and templates are skipped.
func (lx *lexer) scanTemplate() (*templateParts, error) {
	lx.advance(1)
	parts := &templateParts{}
	var cooked strings.Builder
	rawStart := lx.pos
	for {
		if lx.pos >= len(lx.input) {
			return parts, lx.errorf(true, "unterminated template literal")
		}
		ch := lx.input[lx.pos]
		switch {
		case ch == '`':
			parts.Cooked = append(parts.Cooked, cooked.String())
			parts.Raw = append(parts.Raw, lx.input[rawStart:lx.pos])
			lx.advance(1)
			return parts, nil
		case ch == '\\':
			if err := lx.scanEscape(&cooked); err != nil {
				return parts, err
			}
		case ch == '$' && lx.peekByte(1) == '{':
			parts.Cooked = append(parts.Cooked, cooked.String())
			parts.Raw = append(parts.Raw, lx.input[rawStart:lx.pos])
			cooked.Reset()
			lx.advance(2)
			parts.ExprLine = append(parts.ExprLine, lx.line)
			parts.ExprCol = append(parts.ExprCol, lx.col)
			src, err := lx.scanInterpolation()
			if err != nil {
				return parts, err
			}
			parts.Exprs = append(parts.Exprs, src)
			rawStart = lx.pos
		default:
			cooked.WriteByte(ch)
			lx.advance(1)
		}
	}
}

// scanInterpolation returns the source up to the } closing a ${.
func (lx *lexer) scanInterpolation() (string, error) {
	start := lx.pos
	depth := 0
	for lx.pos < len(lx.input) {
		ch := lx.input[lx.pos]
		switch ch {
		case '{':
			depth++
			lx.advance(1)
		case '}':
			if depth == 0 {
				src := lx.input[start:lx.pos]
				lx.advance(1)
				return src, nil
			}
			depth--
			lx.advance(1)
		case '"', '\'':
			if _, err := lx.scanString(ch); err != nil {
				return "", err
			}
		case '`':
			if _, err := lx.scanTemplate(); err != nil {
				return "", err
			}
		default:
			lx.advance(1)
		}
	}
	return "", lx.errorf(true, "unterminated template interpolation")
}

// helpers
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\n' || ch == '\r' || ch == '\t' || ch == '\f' || ch == '\v'
}
func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isHexDigit(ch byte) bool   { return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') }
func isAlpha(ch byte) bool      { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }
func isIdentBegin(ch byte) bool { return ch == '_' || ch == '$' || isAlpha(ch) }

// identLen returns the byte length of the identifier character at the
// current position, or 0 if there is none. Non-ASCII input must decode to a
// letter, or after the first character to a digit or mark.
func (lx *lexer) identLen(first bool) int {
	if lx.pos >= len(lx.input) {
		return 0
	}
	ch := lx.input[lx.pos]
	if ch < utf8.RuneSelf {
		if isIdentBegin(ch) || (!first && isDigit(ch)) {
			return 1
		}
		return 0
	}
	r, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
	switch {
	case r == utf8.RuneError:
		return 0
	case unicode.IsLetter(r):
		return size
	case !first && (unicode.IsDigit(r) || unicode.IsMark(r)):
		return size
	}
	return 0
}
