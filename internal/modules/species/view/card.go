package view

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nfrund/fieldnotes/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// SummaryLength is the number of characters of the description shown on
// the card face.
const SummaryLength = 150

var kingdomCaser = cases.Title(language.English)

// CardProps is everything needed to render one species card.
type CardProps struct {
	Species domain.Species
	IsOwner bool
	Open    bool

	// Edit and EditError carry a rejected submission back into the dialog.
	Edit      *domain.SpeciesUpdate
	EditError string
}

// CardID is the DOM id of a species card, used as the htmx swap target.
func CardID(key string) string {
	return "species-card-" + key
}

// ShortDescription shortens a description for the card face. Absent or empty
// descriptions yield the empty string.
func ShortDescription(description *string) string {
	if description == nil || *description == "" {
		return ""
	}
	runes := []rune(*description)
	if len(runes) > SummaryLength {
		runes = runes[:SummaryLength]
	}
	return strings.TrimRightFunc(string(runes), unicode.IsSpace) + "..."
}

// Card renders a species summary with its detail modal. The edit affordance
// is nested only when IsOwner is set.
func Card(p CardProps) gomponents.Node {
	s := p.Species
	key := s.Key()

	return Div(
		ID(CardID(key)),
		Data("key", key),
		Class("m-4 w-72 min-w-72 flex-none rounded border-2 p-3 shadow bg-white"),
		imageFrame(s),
		H3(Class("mt-3 text-2xl font-semibold"), gomponents.Text(s.ScientificName)),
		H4(Class("text-lg font-light italic"), gomponents.Text(deref(s.CommonName))),
		gomponents.If(s.Kingdom != "",
			Span(Class("inline-block text-xs uppercase tracking-wide text-emerald-700"), gomponents.Text(kingdomCaser.String(s.Kingdom))),
		),
		P(Class("species-summary"), gomponents.Text(ShortDescription(s.Description))),
		toggleForm(key, "Learn More", "mt-3 w-full bg-gray-900 text-white rounded px-4 py-2"),
		gomponents.If(p.Open, modal(s, key)),
		gomponents.If(p.IsOwner, EditDialog(s, p.Edit, p.EditError)),
	)
}

func modal(s domain.Species, key string) gomponents.Node {
	return Div(
		Class("fixed inset-0 z-40 flex items-center justify-center bg-black/50"),
		Div(
			Role("dialog"), Aria("modal", "true"), Aria("labelledby", "species-title-"+key),
			Class("max-h-screen overflow-y-auto bg-white rounded-lg p-6 sm:max-w-[600px] w-full"),
			H2(ID("species-title-"+key), Class("text-xl font-bold mb-4"),
				gomponents.Text("Scientific Name: "+s.ScientificName),
			),
			Div(
				Class("space-y-4"),
				speciesImage(s, "w-full object-contain"),
				detail("Common Name:", valueOr(s.CommonName, "N/A")),
				detail("Total Population:", populationOr(s.TotalPopulation, "Unknown")),
				detail("Kingdom:", s.Kingdom),
				detail("Description:", valueOr(s.Description, "No description available.")),
			),
			toggleForm(key, "Close", "mt-6 w-full border rounded px-4 py-2"),
		),
	)
}

// toggleForm posts to the toggle endpoint. htmx swaps the returned card in
// place; without JavaScript the form falls back to a redirect.
func toggleForm(key, label, classes string) gomponents.Node {
	action := fmt.Sprintf("/species/%s/toggle", key)
	return Form(
		Method("post"), Action(action),
		hx.Post(action), hx.Target("#"+CardID(key)), hx.Swap("outerHTML"),
		Button(Type("submit"), Class(classes), gomponents.Text(label)),
	)
}

func imageFrame(s domain.Species) gomponents.Node {
	if s.Image == nil {
		return nil
	}
	return Div(Class("relative h-40 w-full"), speciesImage(s, "h-40 w-full object-cover"))
}

// speciesImage returns nil when the record has no image.
func speciesImage(s domain.Species, classes string) gomponents.Node {
	if s.Image == nil {
		return nil
	}
	return Img(Src(*s.Image), Alt(s.ScientificName), Class(classes))
}

func detail(label, value string) gomponents.Node {
	return P(Strong(gomponents.Text(label)), gomponents.Text(" "+value))
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func populationOr(v *int64, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.FormatInt(*v, 10)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
