package view

import (
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LoadErrorText is shown in place of the list when species cannot be read.
const LoadErrorText = "Error loading species"

// Page renders the species catalogue.
func Page(cards []CardProps) gomponents.Node {
	return Div(
		Class("container mx-auto py-8"),
		H1(Class("text-3xl font-bold mb-6"), gomponents.Text("Species")),
		Div(
			ID("species-list"),
			Class("flex flex-wrap"),
			gomponents.Map(cards, Card),
		),
	)
}

// LoadError renders the static failure message.
func LoadError() gomponents.Node {
	return P(gomponents.Text(LoadErrorText))
}
