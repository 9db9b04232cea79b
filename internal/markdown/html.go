package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reHeading    = regexp.MustCompile(`(?i)<h([1-6])(?:\s[^>]*)?>(.*?)</h[1-6]>`)
	reParagraph  = regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>(.*?)</p>`)
	reBreak      = regexp.MustCompile(`(?i)<br[^>]*/?>`)
	reStrong     = regexp.MustCompile(`(?i)<(?:strong|b)(?:\s[^>]*)?>(.*?)</(?:strong|b)>`)
	reEmphasis   = regexp.MustCompile(`(?i)<(?:em|i)(?:\s[^>]*)?>(.*?)</(?:em|i)>`)
	reAnchor     = regexp.MustCompile(`(?i)<a\s[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	reUnordered  = regexp.MustCompile(`(?is)<ul(?:\s[^>]*)?>(.*?)</ul>`)
	reOrdered    = regexp.MustCompile(`(?is)<ol(?:\s[^>]*)?>(.*?)</ol>`)
	reListItem   = regexp.MustCompile(`(?is)<li(?:\s[^>]*)?>(.*?)</li>`)
	rePreCode    = regexp.MustCompile(`(?is)<pre(?:\s[^>]*)?>\s*<code[^>]*>(.*?)</code>\s*</pre>`)
	reCode       = regexp.MustCompile(`(?i)<code(?:\s[^>]*)?>(.*?)</code>`)
	reBlockquote = regexp.MustCompile(`(?is)<blockquote(?:\s[^>]*)?>(.*?)</blockquote>`)
	reAnyTag     = regexp.MustCompile(`<[^>]*>`)
	reEntity     = regexp.MustCompile(`(?i)&(nbsp|lt|gt|amp|quot|#39);`)
	reBlankRuns  = regexp.MustCompile(`\n\s*\n\s*\n`)
)

var entities = map[string]string{
	"nbsp": " ",
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"#39":  "'",
}

// replaceGroups is ReplaceAllStringFunc with access to submatches.
func replaceGroups(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	var b strings.Builder
	last := 0
	for _, idx := range re.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(s[last:idx[0]])
		groups := make([]string, len(idx)/2)
		for i := range groups {
			if idx[2*i] >= 0 {
				groups[i] = s[idx[2*i]:idx[2*i+1]]
			}
		}
		b.WriteString(fn(groups))
		last = idx[1]
	}
	b.WriteString(s[last:])

	return b.String()
}

// listItems renders every <li> of a list body on its own line. Markup
// between items is dropped.
func listItems(body string, marker func(n int) string) string {
	var b strings.Builder
	for i, li := range reListItem.FindAllStringSubmatch(body, -1) {
		b.WriteString(marker(i + 1))
		b.WriteString(strings.TrimSpace(li[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// HTMLToMarkdown converts clipboard HTML to markdown. Only the common
// formatting tags are translated, everything else is stripped.
func HTMLToMarkdown(html string) string {
	md := replaceGroups(reHeading, html, func(g []string) string {
		level, _ := strconv.Atoi(g[1])
		return strings.Repeat("#", level) + " " + strings.TrimSpace(g[2]) + "\n\n"
	})
	md = reParagraph.ReplaceAllString(md, "$1\n\n")
	md = reBreak.ReplaceAllString(md, "\n")
	md = reStrong.ReplaceAllString(md, "**$1**")
	md = reEmphasis.ReplaceAllString(md, "*$1*")
	md = reAnchor.ReplaceAllString(md, "[$2]($1)")
	md = replaceGroups(reUnordered, md, func(g []string) string {
		return listItems(g[1], func(int) string { return "- " })
	})
	md = replaceGroups(reOrdered, md, func(g []string) string {
		return listItems(g[1], func(n int) string { return strconv.Itoa(n) + ". " })
	})
	md = rePreCode.ReplaceAllString(md, "```\n$1\n```\n")
	md = reCode.ReplaceAllString(md, "`$1`")
	md = replaceGroups(reBlockquote, md, func(g []string) string {
		lines := strings.Split(strings.TrimSpace(g[1]), "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight("> "+strings.TrimSpace(line), " ")
		}
		return strings.Join(lines, "\n") + "\n\n"
	})

	// tags go before entities so that escaped markup survives as text
	md = reAnyTag.ReplaceAllString(md, "")
	md = reEntity.ReplaceAllStringFunc(md, func(m string) string {
		return entities[strings.ToLower(m[1:len(m)-1])]
	})
	md = reBlankRuns.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md)
}

// WordCount returns the number of whitespace separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
