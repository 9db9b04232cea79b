// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md    goldmark.Markdown
	cache *Cache
}

type Option func(r *Renderer)

// WithCache memoizes rendered output in c.
func WithCache(c *Cache) Option {
	return func(r *Renderer) {
		r.cache = c
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, &linkTargetBlank{}),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) Render(source string) (string, error) {
	key := utils.ContentKey(source)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("error converting markdown: %w", err)
	}
	out := buf.String()

	if r.cache != nil {
		// a failed write only costs a re-render next time
		_ = r.cache.Put(key, out)
	}

	return out, nil
}

// linkTargetBlank opens external links in a new tab.
type linkTargetBlank struct{}

func (e *linkTargetBlank) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&linkTargetBlankTransformer{}, 100),
	))
}

type linkTargetBlankTransformer struct{}

func (t *linkTargetBlankTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			if isExternal(link.Destination) {
				setBlank(link)
			}
		case *ast.AutoLink:
			if link.AutoLinkType == ast.AutoLinkURL && isExternal(link.URL(reader.Source())) {
				setBlank(link)
			}
		}
		return ast.WalkContinue, nil
	})
}

func setBlank(n ast.Node) {
	n.SetAttributeString("target", []byte("_blank"))
	n.SetAttributeString("rel", []byte("noopener noreferrer"))
}

func isExternal(dest []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(dest)))
	for _, prefix := range []string{"http://", "https://", "ftp://", "//"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
