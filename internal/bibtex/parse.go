// Package bibtex parses, cleans and re-serializes BibTeX bibliographies.
package bibtex

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field is a single "name = value" pair of an entry, with the value's
// outer delimiters removed and inner braces kept.
type Field struct {
	Name  string
	Value string
}

// Entry is one parsed bibliography entry.
type Entry struct {
	Type   string  // Entry type as written, e.g. "article", "InProceedings"
	Key    string  // Citation key; empty when the entry has none
	Fields []Field // In source order
	Line   int     // Line of the @ that opened the entry (1-indexed)
}

// Get returns the value of the named field (case-insensitive).
func (e Entry) Get(name string) (string, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the named field's value, or "" when absent.
func (e Entry) Value(name string) string {
	v, _ := e.Get(name)
	return v
}

// ParseError describes a malformed entry that was skipped.
type ParseError struct {
	Line    int    // Line number where the error occurred (1-indexed)
	Message string // Description of the error
	Context string // Surrounding content for debugging
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// parser is a single-pass scanner over BibTeX source.
type parser struct {
	src    string
	pos    int
	macros map[string]string
}

// errEntry aborts the current entry; the parser resumes at the next '@'.
type errEntry struct {
	pos int
	msg string
}

// Parse reads every entry in a BibTeX document.
//
// Parsing is best-effort: a malformed entry is reported as a ParseError and
// skipped, and parsing resumes at the next '@'. @comment and @preamble blocks
// are ignored; @string macros are expanded in later field values. Bare words
// that are not defined macros (e.g. month = mar) are kept as written.
func Parse(src string) ([]Entry, []error) {
	p := &parser{src: src, macros: make(map[string]string)}
	var entries []Entry
	var errs []error

	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			break
		}
		p.pos += at
		start := p.pos

		// '@' inside a word, e.g. an email address in free text
		if start > 0 && isIdentChar(p.src[start-1]) {
			p.pos++
			continue
		}

		entry, ok, perr := p.parseBlock()
		if perr != nil {
			errs = append(errs, ParseError{
				Line:    p.lineAt(perr.pos),
				Message: perr.msg,
				Context: p.context(start),
			})
			// Resume after the '@' that started the bad block
			p.pos = start + 1
			continue
		}
		if ok {
			entry.Line = p.lineAt(start)
			entries = append(entries, entry)
		}
	}

	return entries, errs
}

// parseBlock parses one @-block. ok is false for blocks that are not entries.
func (p *parser) parseBlock() (entry Entry, ok bool, perr *errEntry) {
	defer func() {
		// Index errors on truncated input must never escape the parser
		if r := recover(); r != nil {
			entry, ok = Entry{}, false
			perr = &errEntry{pos: len(p.src), msg: fmt.Sprintf("unexpected end of input: %v", r)}
		}
	}()

	p.pos++ // '@'
	kind := p.readIdent()
	if kind == "" {
		return Entry{}, false, nil // Stray '@' in free text
	}

	p.skipSpace()
	if p.eof() {
		return Entry{}, false, &errEntry{pos: p.pos, msg: "unexpected end of input after @" + kind}
	}
	if strings.EqualFold(kind, "comment") && p.src[p.pos] != '{' && p.src[p.pos] != '(' {
		return Entry{}, false, nil // Line comment: "@comment some text"
	}
	var closer byte
	switch p.src[p.pos] {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		return Entry{}, false, &errEntry{pos: p.pos, msg: fmt.Sprintf("expected { or ( after @%s", kind)}
	}
	p.pos++

	switch strings.ToLower(kind) {
	case "comment", "preamble":
		if err := p.skipBody(closer); err != nil {
			return Entry{}, false, err
		}
		return Entry{}, false, nil
	case "string":
		if err := p.parseMacros(closer); err != nil {
			return Entry{}, false, err
		}
		return Entry{}, false, nil
	}

	entry = Entry{Type: kind}
	key, err := p.readKey(closer)
	if err != nil {
		return Entry{}, false, err
	}
	entry.Key = key

	fields, err := p.parseFields(closer)
	if err != nil {
		return Entry{}, false, err
	}
	entry.Fields = fields
	return entry, true, nil
}

// readKey reads the citation key. Entries whose first token is followed by
// '=' have no key; the position is left at the start of that field.
func (p *parser) readKey(closer byte) (string, *errEntry) {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ',' || c == closer || c == '=' || isSpace(c) {
			break
		}
		p.pos++
	}
	key := p.src[start:p.pos]

	p.skipSpace()
	if p.eof() {
		return "", &errEntry{pos: p.pos, msg: "unterminated entry"}
	}
	switch p.src[p.pos] {
	case '=':
		p.pos = start
		return "", nil
	case ',':
		p.pos++
	case closer:
	default:
		return "", &errEntry{pos: p.pos, msg: fmt.Sprintf("expected , after citation key %q", key)}
	}
	return key, nil
}

// parseFields reads "name = value" pairs until the closing delimiter.
func (p *parser) parseFields(closer byte) ([]Field, *errEntry) {
	var fields []Field
	for {
		p.skipSpaceAndCommas()
		if p.eof() {
			return nil, &errEntry{pos: p.pos, msg: "unterminated entry"}
		}
		if p.src[p.pos] == closer {
			p.pos++
			return fields, nil
		}

		name := p.readIdent()
		if name == "" {
			return nil, &errEntry{pos: p.pos, msg: fmt.Sprintf("expected field name, found %q", p.src[p.pos])}
		}
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '=' {
			return nil, &errEntry{pos: p.pos, msg: fmt.Sprintf("expected = after field %q", name)}
		}
		p.pos++

		value, err := p.readValue(closer)
		if err != nil {
			return nil, err
		}
		fields = setField(fields, name, value)

		p.skipSpace()
		if p.eof() {
			return nil, &errEntry{pos: p.pos, msg: "unterminated entry"}
		}
		if c := p.src[p.pos]; c != ',' && c != closer {
			return nil, &errEntry{pos: p.pos, msg: fmt.Sprintf("expected , or %c after field %q", closer, name)}
		}
	}
}

// setField appends a field, or overwrites an earlier one with the same name
// in place so the first occurrence keeps its position.
func setField(fields []Field, name, value string) []Field {
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Name: name, Value: value})
}

// parseMacros reads the body of an @string block.
func (p *parser) parseMacros(closer byte) *errEntry {
	for {
		p.skipSpaceAndCommas()
		if p.eof() {
			return &errEntry{pos: p.pos, msg: "unterminated @string"}
		}
		if p.src[p.pos] == closer {
			p.pos++
			return nil
		}
		name := p.readIdent()
		if name == "" {
			return &errEntry{pos: p.pos, msg: "expected macro name in @string"}
		}
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '=' {
			return &errEntry{pos: p.pos, msg: fmt.Sprintf("expected = after macro %q", name)}
		}
		p.pos++
		value, err := p.readValue(closer)
		if err != nil {
			return err
		}
		p.macros[strings.ToLower(name)] = value
	}
}

// readValue reads a possibly '#'-concatenated value.
func (p *parser) readValue(closer byte) (string, *errEntry) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", &errEntry{pos: p.pos, msg: "unexpected end of input in value"}
		}

		switch c := p.src[p.pos]; {
		case c == '{':
			s, err := p.readBraced()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case c == '"':
			s, err := p.readQuoted()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		default:
			word := p.readBare(closer)
			if word == "" {
				return "", &errEntry{pos: p.pos, msg: fmt.Sprintf("expected value, found %q", c)}
			}
			if v, ok := p.macros[strings.ToLower(word)]; ok {
				word = v
			}
			b.WriteString(word)
		}

		p.skipSpace()
		if p.eof() || p.src[p.pos] != '#' {
			return b.String(), nil
		}
		p.pos++
	}
}

// readBraced reads a {...} value and returns its content with nested braces kept.
func (p *parser) readBraced() (string, *errEntry) {
	start := p.pos
	depth := 0
	for ; !p.eof(); p.pos++ {
		switch p.src[p.pos] {
		case '\\':
			p.pos++ // Escaped character, e.g. \{
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return p.src[start+1 : p.pos-1], nil
			}
		}
	}
	return "", &errEntry{pos: start, msg: "unbalanced braces in value"}
}

// readQuoted reads a "..." value. Quotes inside braces do not terminate it.
func (p *parser) readQuoted() (string, *errEntry) {
	start := p.pos
	p.pos++
	depth := 0
	for ; !p.eof(); p.pos++ {
		switch p.src[p.pos] {
		case '\\':
			p.pos++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				p.pos++
				return p.src[start+1 : p.pos-1], nil
			}
		}
	}
	return "", &errEntry{pos: start, msg: "unterminated quoted value"}
}

// readBare reads a number or macro name.
func (p *parser) readBare(closer byte) string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ',' || c == closer || c == '#' || isSpace(c) || c == '{' || c == '"' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// readIdent reads an entry type, field name or macro name.
func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// skipBody skips a balanced block body up to and including closer.
func (p *parser) skipBody(closer byte) *errEntry {
	start := p.pos
	depth := 0
	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			p.pos++
			return nil
		}
	}
	return &errEntry{pos: start, msg: "unterminated block"}
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipSpaceAndCommas() {
	for !p.eof() && (isSpace(p.src[p.pos]) || p.src[p.pos] == ',') {
		p.pos++
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// lineAt returns the 1-indexed line of a byte offset.
func (p *parser) lineAt(offset int) int {
	if offset > len(p.src) {
		offset = len(p.src)
	}
	return strings.Count(p.src[:offset], "\n") + 1
}

// context returns the first line of the block starting at offset.
func (p *parser) context(offset int) string {
	rest := p.src[offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return truncate(strings.TrimSpace(rest), 50)
}

// truncate truncates a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == ':' || c == '.' || c == '+'
}
