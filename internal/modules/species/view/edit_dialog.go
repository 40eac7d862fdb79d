package view

import (
	"strconv"

	"github.com/nfrund/fieldnotes/internal/domain"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

const editInputClass = "w-full border rounded px-2 py-1 mb-2"

// EditDialog renders the owner's "Edit Species" disclosure. The form is
// prefilled from edit when given, otherwise from the record. A non-empty
// errMsg opens the disclosure and shows the message above the form.
func EditDialog(s domain.Species, edit *domain.SpeciesUpdate, errMsg string) gomponents.Node {
	key := s.Key()
	values := domain.UpdateFor(&s)
	if edit != nil {
		values = *edit
	}

	var population string
	if values.TotalPopulation != nil {
		population = strconv.FormatInt(*values.TotalPopulation, 10)
	}

	action := "/species/" + key
	return gomponents.El("details",
		Class("mt-3 edit-species"),
		gomponents.If(errMsg != "", gomponents.Attr("open")),
		gomponents.El("summary", Class("cursor-pointer text-emerald-700 font-semibold"), gomponents.Text("Edit Species")),
		gomponents.If(errMsg != "",
			P(Role("alert"), Class("edit-error text-red-600 text-sm my-2"), gomponents.Text(errMsg)),
		),
		Form(
			Method("post"), Action(action),
			hx.Post(action), hx.Target("#"+CardID(key)), hx.Swap("outerHTML"),
			Class("mt-2"),
			input("scientific_name", "Scientific name", "text", values.ScientificName, true),
			input("common_name", "Common name", "text", values.CommonName, false),
			input("image", "Image URL", "url", values.Image, false),
			input("total_population", "Total population", "number", population, false),
			input("kingdom", "Kingdom", "text", values.Kingdom, true),
			Label(
				Class("block text-sm"),
				gomponents.Text("Description"),
				Textarea(Name("description"), Class(editInputClass), Rows("4"), gomponents.Text(values.Description)),
			),
			Button(Type("submit"), Class("w-full bg-emerald-600 text-white rounded px-4 py-2"), gomponents.Text("Save")),
		),
	)
}

func input(name, label, inputType, value string, required bool) gomponents.Node {
	return Label(
		Class("block text-sm"),
		gomponents.Text(label),
		Input(
			Type(inputType), Name(name), Value(value), Class(editInputClass),
			gomponents.If(required, Required()),
			gomponents.If(inputType == "number", Min("0")),
		),
	)
}
