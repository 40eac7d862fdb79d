package layouts

import (
	"context"

	"github.com/nfrund/fieldnotes/internal/view"
	"github.com/nfrund/fieldnotes/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindSrc = "https://cdn.tailwindcss.com"

	// htmx skips swapping 4xx responses by default; 422 carries the re-rendered form.
	htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`
)

// Base wraps page content in the document shell. userEmail is shown in the
// navigation when non-empty; an empty value renders the anonymous nav.
func Base(ctx context.Context, title string, flashes partials.FlashData, userEmail string, content cmp.Node) cmp.Node {
	return components.HTML5(components.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []cmp.Node{
			g.Meta(g.Name("htmx-config"), g.Content(htmxConfig)),
			g.Script(g.Src(tailwindSrc)),
			g.Script(g.Src(htmxSrc), g.Defer()),
		},
		Body: []cmp.Node{
			g.Class("bg-gray-50 text-gray-900 min-h-screen"),
			nav(userEmail),
			g.Main(
				g.Class("container mx-auto px-4 py-8"),
				view.AdaptTemplToGomponent(ctx, partials.Flash(flashes)),
				content,
			),
		},
	})
}

func nav(userEmail string) cmp.Node {
	return g.Nav(
		g.Class("bg-white shadow"),
		g.Div(
			g.Class("container mx-auto px-4 py-3 flex items-center justify-between"),
			g.A(g.Href("/"), g.Class("text-xl font-bold text-emerald-700"), cmp.Text(appName)),
			cmp.If(userEmail != "",
				g.Div(
					g.Class("flex items-center gap-4 text-sm"),
					g.A(g.Href("/users"), g.Class("hover:underline"), cmp.Text("Users")),
					g.A(g.Href("/species"), g.Class("hover:underline"), cmp.Text("Species")),
					g.Span(g.Class("text-gray-500"), cmp.Text(userEmail)),
					g.Form(
						g.Method("post"), g.Action("/logout"),
						g.Button(g.Type("submit"), g.Class("text-red-600 hover:underline"), cmp.Text("Log out")),
					),
				),
			),
		),
	)
}
