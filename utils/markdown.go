package utils

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownOnce   sync.Once
	markdownEngine goldmark.Markdown
	contentPolicy  *bluemonday.Policy
)

func initMarkdown() {
	markdownOnce.Do(func() {
		markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.RequireNoFollowOnLinks(true)
	})
}

// RenderContent converts user-written markdown to sanitized HTML.
func RenderContent(markdown string) string {
	initMarkdown()

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return contentPolicy.Sanitize(markdown)
	}
	return contentPolicy.Sanitize(buf.String())
}

// StripHTML removes every tag from s.
func StripHTML(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
