package view

import (
	"github.com/nfrund/fieldnotes/internal/domain"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	// LoadErrorText replaces the grid when profiles cannot be read.
	LoadErrorText = "Error loading user profiles"
	// NoBioText is shown for a profile without a biography.
	NoBioText = "No bio."

	gridClass = "grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"
)

// Page renders the users directory: a heading and one card per profile, in
// the order given.
func Page(profiles []domain.Profile) gomponents.Node {
	return Div(
		Class("container mx-auto py-8"),
		H1(Class("text-3xl font-bold mb-6"), gomponents.Text("Users")),
		Div(
			ID("profile-grid"),
			Class(gridClass),
			gomponents.Map(profiles, ProfileCard),
		),
	)
}

// ProfileCard renders one profile, keyed by email.
func ProfileCard(p domain.Profile) gomponents.Node {
	bio := NoBioText
	if p.Biography != nil {
		bio = *p.Biography
	}
	return Div(
		Data("key", p.Email),
		Class("border p-4 rounded shadow"),
		H2(Class("text-xl font-semibold"), gomponents.Text(p.DisplayName)),
		P(Class("text-gray-600"), gomponents.Text(p.Email)),
		P(Class("mt-2"), gomponents.Text(bio)),
	)
}

// LoadError renders the static failure message.
func LoadError() gomponents.Node {
	return P(gomponents.Text(LoadErrorText))
}
