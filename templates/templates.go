// Package templates renders the server-side HTML pages and the course certificate.
// Pages are static shells: their inline scripts call the JSON API and keep the session in localStorage.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed layout.html certificate.html pages/*.html
var files embed.FS

const (
	PageHome                = "home"
	PageCourses             = "courses"
	PageCourse              = "course"
	PageStudentDashboard    = "student-dashboard"
	PageInstructorDashboard = "instructor-dashboard"
	PageAdminDashboard      = "admin-dashboard"
)

// Pages lists every renderable page name.
var Pages = []string{
	PageHome,
	PageCourses,
	PageCourse,
	PageStudentDashboard,
	PageInstructorDashboard,
	PageAdminDashboard,
}

var funcs = template.FuncMap{
	"longDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"hours": func(h float64) string {
		return fmt.Sprintf("%g", h)
	},
}

var (
	pages       = mustParsePages()
	certificate = template.Must(template.New("certificate.html").Funcs(funcs).ParseFS(files, "certificate.html"))
)

func mustParsePages() map[string]*template.Template {
	set := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		set[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html", "pages/"+name+".html"),
		)
	}
	return set
}

// PageData is handed to every page template.
type PageData struct {
	AppName string
	Title   string
	Page    string
	// CourseID is the id or slug of the course detail page.
	CourseID string
}

// RenderPage writes the named page wrapped in the shared layout.
func RenderPage(w io.Writer, name string, data PageData) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if data.Page == "" {
		data.Page = name
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

type CertificateData struct {
	StudentName       string
	CourseTitle       string
	InstructorName    string
	DurationHours     float64
	CompletedAt       time.Time
	CertificateNumber string
}

func RenderCertificate(w io.Writer, data CertificateData) error {
	return certificate.Execute(w, data)
}
