// Package editor implements the markdown editing helpers of the note editor:
// wrapping the selection, line prefixes, list continuation and paste
// conversion. All functions are pure and work on rune offsets.
package editor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-notes/internal/markdown"
)

// Doc is the text of an editor together with its selection. SelStart and
// SelEnd are rune offsets; an empty selection is a caret.
type Doc struct {
	Text     string
	SelStart int
	SelEnd   int
}

// NewDoc returns a document with the caret at the end of text.
func NewDoc(text string) Doc {
	n := len([]rune(text))
	return Doc{Text: text, SelStart: n, SelEnd: n}
}

// Caret returns a copy of d with an empty selection at pos.
func (d Doc) Caret(pos int) Doc {
	d.SelStart, d.SelEnd = pos, pos
	return d.normalized()
}

// Selected returns the selected text.
func (d Doc) Selected() string {
	d = d.normalized()
	return string([]rune(d.Text)[d.SelStart:d.SelEnd])
}

func (d Doc) normalized() Doc {
	n := len([]rune(d.Text))
	clamp := func(v int) int {
		return max(0, min(v, n))
	}
	d.SelStart, d.SelEnd = clamp(d.SelStart), clamp(d.SelEnd)
	if d.SelStart > d.SelEnd {
		d.SelStart, d.SelEnd = d.SelEnd, d.SelStart
	}
	return d
}

// InsertText replaces the selection with before + inner + after, where inner
// is the selected text or placeholder when nothing is selected. The inner
// text ends up selected.
func InsertText(d Doc, before, after, placeholder string) Doc {
	d = d.normalized()
	runes := []rune(d.Text)

	inner := string(runes[d.SelStart:d.SelEnd])
	if inner == "" {
		inner = placeholder
	}

	start := d.SelStart + len([]rune(before))
	return Doc{
		Text:     string(runes[:d.SelStart]) + before + inner + after + string(runes[d.SelEnd:]),
		SelStart: start,
		SelEnd:   start + len([]rune(inner)),
	}
}

// lineStart returns the offset of the first rune of the line holding pos.
func lineStart(runes []rune, pos int) int {
	for i := pos; i > 0; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	return 0
}

// InsertAtLineStart prefixes the line holding the caret.
func InsertAtLineStart(d Doc, prefix string) Doc {
	d = d.normalized()
	runes := []rune(d.Text)
	ls := lineStart(runes, d.SelStart)
	caret := d.SelStart + len([]rune(prefix))

	return Doc{
		Text:     string(runes[:ls]) + prefix + string(runes[ls:]),
		SelStart: caret,
		SelEnd:   caret,
	}
}

var (
	reBullet  = regexp.MustCompile(`^(\s*)([-*+])\s`)
	reOrdered = regexp.MustCompile(`^(\s*)(\d+)\.\s`)
)

// Enter continues a markdown list when the caret line is a list item. It
// reports false when the key should be handled as a plain newline.
func Enter(d Doc) (Doc, bool) {
	d = d.normalized()
	runes := []rune(d.Text)
	line := string(runes[lineStart(runes, d.SelStart):d.SelStart])

	if m := reBullet.FindStringSubmatch(line); m != nil {
		return InsertText(d, "\n"+m[1]+m[2]+" ", "", ""), true
	}
	if m := reOrdered.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return d, false
		}
		return InsertText(d, "\n"+m[1]+strconv.Itoa(n+1)+". ", "", ""), true
	}

	return d, false
}

// Tab indents with two spaces.
func Tab(d Doc) Doc {
	return InsertText(d, "  ", "", "")
}

func Bold(d Doc) Doc {
	return InsertText(d, "**", "**", "bold text")
}

func Italic(d Doc) Doc {
	return InsertText(d, "*", "*", "italic text")
}

func Link(d Doc) Doc {
	return InsertText(d, "[", "](url)", "link text")
}

func Code(d Doc) Doc {
	return InsertText(d, "`", "`", "code")
}

// Heading prefixes the caret line with level hashes. Levels outside 1..6
// leave the document unchanged.
func Heading(d Doc, level int) Doc {
	if level < 1 || level > 6 {
		return d
	}
	return InsertAtLineStart(d, strings.Repeat("#", level)+" ")
}

// Paste replaces the selection with clipboard content. HTML wins over plain
// text and is converted to markdown. The caret is placed after the
// insertion.
func Paste(d Doc, plain, html string) Doc {
	text := plain
	if strings.TrimSpace(html) != "" {
		text = markdown.HTMLToMarkdown(html)
	}

	d = d.normalized()
	runes := []rune(d.Text)
	d.Text = string(runes[:d.SelStart]) + text + string(runes[d.SelEnd:])
	return d.Caret(d.SelStart + len([]rune(text)))
}
