// Package templates renders the activity pages as templ components.
//
// Components are written directly against the templ API. Every dynamic value
// passes through templ.EscapeString on the way out; server-supplied text
// (activity names, descriptions, emails, messages) is never emitted as markup.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@1.9.12"

// Toast is a transient notice rendered at the top of the page.
type Toast struct {
	Kind    string
	Message string
}

// Page wraps body in the full HTML shell. toast may be nil.
func Page(title string, toast *Toast, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(title))
		b.WriteString("</title>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/styles.css\">")
		b.WriteString("<script src=\"" + htmxScriptURL + "\" defer></script>")
		b.WriteString("</head><body hx-boost=\"true\"><header><h1>Mergington High School</h1>")
		b.WriteString("<p>Extracurricular Activities</p></header><main>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if toast != nil {
			if err := Banner(*toast).Render(ctx, w); err != nil {
				return err
			}
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main><footer><p>&copy; Mergington High School</p></footer></body></html>")
		return err
	})
}

// Banner renders a transient notice with its kind as the styling class.
func Banner(toast Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			"<div id=\"message\" class=\"message "+templ.EscapeString(toast.Kind)+"\">"+
				templ.EscapeString(toast.Message)+
				"</div>")
		return err
	})
}
