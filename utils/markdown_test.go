package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderContent(t *testing.T) {
	html := RenderContent("**bold** and `code`")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<code>code</code>")
}

func TestRenderContentStripsScripts(t *testing.T) {
	html := RenderContent("hi <script>alert(1)</script> [x](javascript:alert(1))")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "javascript:")
}
