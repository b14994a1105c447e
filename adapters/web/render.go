package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = []string{
	"login",
	"dashboard",
	"about",
	"experience_list",
	"experience_form",
	"feedback_list",
	"project_list",
	"project_form",
	"confirm_delete",
}

var templateFuncs = template.FuncMap{
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		}
		return ""
	},
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"join":     strings.Join,
	"barWidth": func(count, max int) int {
		if max <= 0 {
			return 0
		}
		return count * 100 / max
	},
}

// htmlRender maps a page name to its template set. Every set shares layout.html.
type htmlRender map[string]*template.Template

func newHTMLRender() (htmlRender, error) {
	r := make(htmlRender, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFiles, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r[page] = t
	}
	return r, nil
}

func (r htmlRender) Instance(name string, data any) render.Render {
	return render.HTML{Template: r[name], Name: "layout.html", Data: data}
}
