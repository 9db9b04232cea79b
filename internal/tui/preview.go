package tui

import (
	"regexp"
	"strings"
)

var (
	reHeadingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reBulletLine  = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	reStrongSpan  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reCodeSpan    = regexp.MustCompile("`([^`]+)`")
)

// renderPreview draws markdown for the terminal: headings, quotes, bullets,
// fences and the bold and code spans are styled, the rest is shown as is.
func renderPreview(md string) string {
	if strings.TrimSpace(md) == "" {
		return helpStyle.Render("empty note")
	}

	lines := strings.Split(md, "\n")
	out := make([]string, 0, len(lines))
	fenced := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenced = !fenced
			continue
		}
		if fenced {
			out = append(out, codeStyle.Render("  "+line))
			continue
		}

		switch {
		case reHeadingLine.MatchString(line):
			m := reHeadingLine.FindStringSubmatch(line)
			out = append(out, headingStyle.Render(m[2]))
		case strings.HasPrefix(line, ">"):
			out = append(out, quoteStyle.Render("│ "+strings.TrimSpace(strings.TrimPrefix(line, ">"))))
		case reBulletLine.MatchString(line):
			m := reBulletLine.FindStringSubmatch(line)
			out = append(out, m[1]+"• "+inlineSpans(m[2]))
		default:
			out = append(out, inlineSpans(line))
		}
	}

	return strings.Join(out, "\n")
}

func inlineSpans(line string) string {
	line = reStrongSpan.ReplaceAllStringFunc(line, func(s string) string {
		return titleStyle.Render(s[2 : len(s)-2])
	})
	return reCodeSpan.ReplaceAllStringFunc(line, func(s string) string {
		return codeStyle.Render(s[1 : len(s)-1])
	})
}
