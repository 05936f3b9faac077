package format

import (
	"strings"

	"github.com/tagwire/tagwire"
)

// scanner is an explicit cursor over raw model text. Each step either
// advances the cursor or reports failure without moving it, which keeps
// truncation behavior at every boundary independently testable.
type scanner struct {
	text string
	pos  int
}

// findTagOpen advances the cursor to the next '<'. Reports false, parking
// the cursor at the end of input, when no tag opens in the remaining text.
func (sc *scanner) findTagOpen() bool {
	idx := strings.IndexByte(sc.text[sc.pos:], '<')
	if idx < 0 {
		sc.pos = len(sc.text)
		return false
	}
	sc.pos += idx
	return true
}

// advance moves the cursor forward n bytes. The minimal advance of one byte
// is what guarantees forward progress when a tag is abandoned.
func (sc *scanner) advance(n int) {
	sc.pos += n
}

// nameTerminator returns the offset of the first '>' or ' ' in tag, which
// bounds the tag name. Returns -1 when the text truncates before either.
func nameTerminator(tag string) int {
	return strings.IndexAny(tag, "> ")
}

// openingEnd returns the offset of the '>' terminating the opening tag, or
// -1 when the text truncates first.
func openingEnd(tag string) int {
	return strings.IndexByte(tag, '>')
}

// matchingClose returns the offset of the literal closing tag </name> at or
// after from, or -1 when it never appears.
func matchingClose(tag, name string, from int) int {
	idx := strings.Index(tag[from:], "</"+name+">")
	if idx < 0 {
		return -1
	}
	return from + idx
}

// scanInvocation attempts to read one complete invocation at the cursor,
// which must sit on a '<'. On success the cursor lands just past the closing
// tag; on failure it does not move and the caller advances minimally.
func (sc *scanner) scanInvocation() (tagwire.Invocation, bool) {
	rest := sc.text[sc.pos:]

	nameEnd := nameTerminator(rest)
	if nameEnd < 0 {
		return tagwire.Invocation{}, false
	}
	name := rest[1:nameEnd]

	openEnd := openingEnd(rest)
	if openEnd < 0 {
		return tagwire.Invocation{}, false
	}

	closeIdx := matchingClose(rest, name, openEnd+1)
	if closeIdx < 0 {
		return tagwire.Invocation{}, false
	}

	var attrs map[string]string
	if rest[nameEnd] == ' ' {
		attrs = parseAttributes(rest[nameEnd+1 : openEnd])
	}
	payload := trimPayload(rest[openEnd+1 : closeIdx])

	sc.advance(closeIdx + len("</"+name+">"))
	return tagwire.NewInvocation(name, attrs, payload), true
}

// trimPayload extracts the payload from a raw tag body. A body that is empty
// after trimming yields no payload, and so does a body opening another tag:
// apparent nesting is deliberately not recovered.
func trimPayload(body string) string {
	body = strings.TrimSpace(body)
	if strings.HasPrefix(body, "<") {
		return ""
	}
	return body
}
