package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPages(t *testing.T) {
	for _, name := range Pages {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderPage(&buf, name, PageData{AppName: "EduPlatform", Title: "Test", CourseID: "42"})
			require.NoError(t, err)

			html := buf.String()
			assert.Contains(t, html, "<title>Test - EduPlatform</title>")
			assert.Contains(t, html, `data-page="`+name+`"`)
			assert.Contains(t, html, "auth_token")
		})
	}
}

func TestRenderPageUnknown(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderPage(&buf, "nope", PageData{}))
}

func TestRenderCertificateEscapes(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCertificate(&buf, CertificateData{
		StudentName:       "Alice <script>",
		CourseTitle:       "Go & Fiber",
		InstructorName:    "John Doe",
		DurationHours:     12.5,
		CompletedAt:       time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		CertificateNumber: "EDU-000001-ABCDEF12",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Alice &lt;script&gt;")
	assert.Contains(t, html, "Go &amp; Fiber")
	assert.Contains(t, html, "Duration: 12.5 hours")
	assert.Contains(t, html, "Completed on March 5, 2024")
	assert.Contains(t, html, "EDU-000001-ABCDEF12")
}
