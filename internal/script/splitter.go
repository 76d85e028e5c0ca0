// Package script cuts Firebird scripts into statements and executes them.
package script

import (
	"regexp"
	"strings"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// Mode selects the splitting policy.
type Mode = dbmeta.SplitMode

const (
	// ModeTerminator splits on the current terminator and honors SET TERM.
	ModeTerminator = dbmeta.SplitTerminator
	// ModeSimple splits on every semicolon.
	ModeSimple = dbmeta.SplitSimple
)

// DefaultTerminator is the terminator in effect at the start of every script.
const DefaultTerminator = ";"

// ParseMode parses a mode name as accepted by --split-mode.
func ParseMode(s string) (Mode, error) {
	return dbmeta.ParseSplitMode(s)
}

var setTermPattern = regexp.MustCompile(`(?is)^SET\s+TERM(?:INATOR)?\s+(\S+)$`)

// Splitter turns script text into executable statements.
// A Splitter holds no state between calls and is safe for concurrent use.
type Splitter struct {
	mode Mode
}

// NewSplitter creates a splitter for the given mode.
func NewSplitter(mode Mode) *Splitter {
	return &Splitter{mode: mode}
}

// Mode returns the splitting policy.
func (s *Splitter) Mode() Mode {
	return s.mode
}

// Split returns the statements of text in source order. Statements are
// trimmed and never empty. Malformed input such as an unclosed quote is
// not diagnosed; it yields whatever statements the scan produces.
func (s *Splitter) Split(text string) []dbmeta.Statement {
	if s.mode == ModeSimple {
		return splitSimple(text)
	}
	return splitTerminated(text)
}

func splitSimple(text string) []dbmeta.Statement {
	var stmts []dbmeta.Statement
	line := 1
	for _, part := range strings.Split(text, ";") {
		lead := len(part) - len(strings.TrimLeft(part, " \t\r\n"))
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			stmts = append(stmts, dbmeta.Statement{
				Text: trimmed,
				Line: line + strings.Count(part[:lead], "\n"),
			})
		}
		line += strings.Count(part, "\n")
	}
	return stmts
}

// scanState is the parser context of one terminator-mode scan. The current
// terminator lives here and nowhere else.
type scanState struct {
	input string
	pos   int
	line  int
	term  string
}

func splitTerminated(text string) []dbmeta.Statement {
	st := &scanState{input: text, line: 1, term: DefaultTerminator}
	var stmts []dbmeta.Statement
	for {
		st.skipInsignificant()
		if st.pos >= len(st.input) {
			return stmts
		}
		line := st.line
		raw := st.scanStatement()
		body := strings.TrimSpace(raw)
		if t, ok := setTermDirective(body); ok {
			st.term = t
			continue
		}
		if body != "" {
			stmts = append(stmts, dbmeta.Statement{Text: body, Line: line})
		}
	}
}

// skipInsignificant drops whitespace and comments preceding a statement.
func (st *scanState) skipInsignificant() {
	for st.pos < len(st.input) {
		rest := st.input[st.pos:]
		switch {
		case isSpace(rest[0]):
			st.advance(1)
		case strings.HasPrefix(rest, "--"):
			st.advance(lineCommentLen(rest))
		case strings.HasPrefix(rest, "/*"):
			st.advance(blockCommentLen(rest))
		default:
			return
		}
	}
}

// scanStatement consumes input up to and including the current terminator
// and returns the statement text without it. At end of input it returns
// the remainder.
func (st *scanState) scanStatement() string {
	start := st.pos
	i := st.pos
	for i < len(st.input) {
		rest := st.input[i:]
		switch c := rest[0]; {
		case c == '\'' || c == '"':
			i += quotedLen(rest)
		case strings.HasPrefix(rest, "--"):
			i += lineCommentLen(rest)
		case strings.HasPrefix(rest, "/*"):
			i += blockCommentLen(rest)
		case strings.HasPrefix(rest, st.term):
			text := st.input[start:i]
			st.advance(i + len(st.term) - st.pos)
			return text
		default:
			i++
		}
	}
	text := st.input[start:]
	st.advance(len(st.input) - st.pos)
	return text
}

func (st *scanState) advance(n int) {
	st.line += strings.Count(st.input[st.pos:st.pos+n], "\n")
	st.pos += n
}

// quotedLen returns the length of the quoted region at the start of s,
// treating a doubled quote as an escaped one.
func quotedLen(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

func lineCommentLen(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i + 1
	}
	return len(s)
}

func blockCommentLen(s string) int {
	if i := strings.Index(s[2:], "*/"); i >= 0 {
		return i + 4
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// setTermDirective reports whether stmt is a SET TERM directive and returns
// the new terminator.
func setTermDirective(stmt string) (string, bool) {
	m := setTermPattern.FindStringSubmatch(strings.TrimSpace(stripComments(stmt)))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// stripComments removes comments outside quoted regions.
func stripComments(s string) string {
	if !strings.Contains(s, "--") && !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case rest[0] == '\'' || rest[0] == '"':
			n := quotedLen(rest)
			b.WriteString(rest[:n])
			i += n
		case strings.HasPrefix(rest, "--"):
			i += lineCommentLen(rest)
			b.WriteByte('\n')
		case strings.HasPrefix(rest, "/*"):
			i += blockCommentLen(rest)
			b.WriteByte(' ')
		default:
			b.WriteByte(rest[0])
			i++
		}
	}
	return b.String()
}
