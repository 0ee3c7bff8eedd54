package common

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var layoutFS embed.FS

// Views is the shared layout plus one feature's templates.
type Views struct {
	t *template.Template
}

// MustParse parses the layout and the feature templates matched by patterns
// in fsys. It panics on error, so call it from a package-level var.
func MustParse(fsys fs.FS, patterns ...string) *Views {
	t := template.Must(template.New("").Funcs(Funcs()).ParseFS(layoutFS, "templates/*.html"))
	if len(patterns) > 0 {
		t = template.Must(t.ParseFS(fsys, patterns...))
	}
	return &Views{t: t}
}

// Fragment renders a single named template. Fragments are what SSE handlers
// patch into the page; their root element carries the id to morph.
func (v *Views) Fragment(name string, data any) templ.Component {
	tmpl := v.t.Lookup(name)
	if tmpl == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q not found", name)
		})
	}
	return templ.FromGoHTML(tmpl, data)
}

type layoutData struct {
	PageMeta
	Body template.HTML
}

// Page renders the named template inside the layout.
func (v *Views) Page(meta PageMeta, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, v.Fragment(name, data))
		if err != nil {
			return err
		}
		return v.t.ExecuteTemplate(w, "layout", layoutData{PageMeta: meta, Body: body})
	})
}
