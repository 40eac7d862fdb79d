package pages

import (
	"github.com/nfrund/fieldnotes/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	inputClass  = "w-full border rounded-lg px-3 py-2 mb-3"
	buttonClass = "w-full bg-emerald-600 hover:bg-emerald-700 text-white font-semibold rounded-lg px-4 py-2"
)

// HomeContent is the landing page: links for signed-in users, sign-in and
// sign-up forms for everyone else.
func HomeContent(data auth.LandingData) cmp.Node {
	if data.SignedIn {
		return g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-10"),
			g.H1(g.Class("text-3xl font-extrabold text-emerald-700 mb-4"), cmp.Text("Welcome back")),
			g.P(g.Class("text-gray-700 mb-6"), cmp.Textf("Signed in as %s.", data.UserEmail)),
			g.Div(
				g.Class("flex gap-4"),
				g.A(g.Href("/users"), g.Class("text-emerald-700 font-semibold hover:underline"), cmp.Text("Browse users")),
				g.A(g.Href("/species"), g.Class("text-emerald-700 font-semibold hover:underline"), cmp.Text("Browse species")),
			),
		)
	}

	return g.Div(
		g.Class("grid grid-cols-1 md:grid-cols-2 gap-8"),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-8"),
			g.H2(g.Class("text-2xl font-bold mb-4"), cmp.Text("Sign in")),
			g.Form(
				g.ID("login-form"), g.Method("post"), g.Action("/login"),
				field("email", "Email", "email", data.Email),
				field("password", "Password", "password", ""),
				g.Button(g.Type("submit"), g.Class(buttonClass), cmp.Text("Sign in")),
			),
		),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-8"),
			g.H2(g.Class("text-2xl font-bold mb-4"), cmp.Text("Create an account")),
			g.Form(
				g.ID("signup-form"), g.Method("post"), g.Action("/signup"),
				field("email", "Email", "email", data.Email),
				field("display_name", "Display name", "text", data.DisplayName),
				field("password", "Password (at least 8 characters)", "password", ""),
				g.Button(g.Type("submit"), g.Class(buttonClass), cmp.Text("Sign up")),
			),
		),
	)
}

func field(name, label, inputType, value string) cmp.Node {
	return g.Label(
		g.Class("block text-sm text-gray-700"),
		cmp.Text(label),
		g.Input(
			g.Type(inputType), g.Name(name), g.Class(inputClass), g.Required(),
			cmp.If(value != "", g.Value(value)),
		),
	)
}
