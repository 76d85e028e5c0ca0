package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator computes content checksums.
type Calculator interface {
	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256. It is a zero-size type;
// pass it by value.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(c.normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

// Short abbreviates a checksum for log output.
func Short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

// normalize strips comments, lowercases everything outside quotes and
// collapses whitespace runs to one space.
func (c SHA256) normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	lastWasSpace := true
	for _, tok := range tokenize(content) {
		if tok.quoted {
			b.WriteString(tok.text)
			lastWasSpace = false
			continue
		}
		for _, r := range tok.text {
			if unicode.IsSpace(r) {
				if !lastWasSpace {
					b.WriteRune(' ')
					lastWasSpace = true
				}
			} else {
				b.WriteRune(unicode.ToLower(r))
				lastWasSpace = false
			}
		}
	}

	return strings.TrimSpace(b.String())
}

type token struct {
	text   string
	quoted bool
}

type commentState int

const (
	csNormal commentState = iota
	csLineComment
	csBlockComment
	csQuote
)

// tokenize splits content into quoted and unquoted runs, replacing every
// comment with a single space. Firebird block comments do not nest.
func tokenize(content string) []token {
	var tokens []token
	var b strings.Builder
	flush := func(quoted bool) {
		if b.Len() > 0 {
			tokens = append(tokens, token{text: b.String(), quoted: quoted})
			b.Reset()
		}
	}

	state := csNormal
	var quote byte
	i := 0
	for i < len(content) {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case csNormal:
			switch {
			case ch == '-' && next == '-':
				state = csLineComment
				b.WriteByte(' ')
				i += 2
			case ch == '/' && next == '*':
				state = csBlockComment
				b.WriteByte(' ')
				i += 2
			case ch == '\'' || ch == '"':
				flush(false)
				state = csQuote
				quote = ch
				b.WriteByte(ch)
				i++
			default:
				b.WriteByte(ch)
				i++
			}

		case csLineComment:
			if ch == '\n' {
				b.WriteByte(ch)
				state = csNormal
			}
			i++

		case csBlockComment:
			if ch == '*' && next == '/' {
				state = csNormal
				i += 2
			} else {
				i++
			}

		case csQuote:
			b.WriteByte(ch)
			i++
			if ch == quote {
				if next == quote {
					b.WriteByte(next)
					i++
				} else {
					flush(true)
					state = csNormal
				}
			}
		}
	}
	flush(state == csQuote)

	return tokens
}
