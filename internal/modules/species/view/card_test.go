package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
)

func render(t *testing.T, n gomponents.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func lynx() domain.Species {
	return domain.Species{
		ID:             testutils.RecordID(domain.SpeciesTable, "lynx"),
		ScientificName: "Lynx lynx",
		Kingdom:        "animalia",
		Author:         testutils.RecordID("user", "ada"),
	}
}

func TestShortDescription(t *testing.T) {
	t.Run("long text is cut to 150 characters", func(t *testing.T) {
		desc := strings.Repeat("abcdefghij", 20)
		got := ShortDescription(&desc)
		assert.Equal(t, desc[:150]+"...", got)
	})

	t.Run("trailing whitespace at the cut is trimmed", func(t *testing.T) {
		desc := strings.Repeat("a", 148) + "  tail that is cut off"
		assert.Equal(t, strings.Repeat("a", 148)+"...", ShortDescription(&desc))
	})

	t.Run("leading whitespace is kept", func(t *testing.T) {
		desc := "  short"
		assert.Equal(t, "  short...", ShortDescription(&desc))
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		desc := strings.Repeat("é", 200)
		assert.Equal(t, strings.Repeat("é", 150)+"...", ShortDescription(&desc))
	})

	t.Run("absent or empty yields empty text", func(t *testing.T) {
		empty := ""
		assert.Equal(t, "", ShortDescription(nil))
		assert.Equal(t, "", ShortDescription(&empty))
	})
}

func TestCard_Summary(t *testing.T) {
	s := lynx()
	s.CommonName = testutils.Ptr("Eurasian lynx")
	s.Image = testutils.Ptr("https://example.com/lynx.jpg")

	out := render(t, Card(CardProps{Species: s}))

	assert.Contains(t, out, `id="species-card-lynx"`)
	assert.Contains(t, out, `data-key="lynx"`)
	assert.Contains(t, out, `alt="Lynx lynx"`)
	assert.Contains(t, out, ">Lynx lynx</h3>")
	assert.Contains(t, out, ">Eurasian lynx</h4>")
	assert.Contains(t, out, ">Animalia</span>")
	assert.Contains(t, out, "Learn More")
	assert.Contains(t, out, `hx-post="/species/lynx/toggle"`)
	assert.NotContains(t, out, "Scientific Name:", "modal is closed by default")
}

func TestCard_MissingOptionalFields(t *testing.T) {
	out := render(t, Card(CardProps{Species: lynx(), Open: true}))

	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, `<p class="species-summary"></p>`)
	assert.Contains(t, out, "Scientific Name: Lynx lynx")
	assert.Contains(t, out, "<strong>Common Name:</strong> N/A")
	assert.Contains(t, out, "<strong>Total Population:</strong> Unknown")
	assert.Contains(t, out, "<strong>Kingdom:</strong> animalia")
	assert.Contains(t, out, "<strong>Description:</strong> No description available.")
}

func TestCard_ModalShowsValues(t *testing.T) {
	s := lynx()
	s.CommonName = testutils.Ptr("")
	s.TotalPopulation = testutils.Ptr(int64(9000))
	s.Description = testutils.Ptr("Medium-sized wild cat.")

	out := render(t, Card(CardProps{Species: s, Open: true}))

	assert.Contains(t, out, "<strong>Common Name:</strong> </p>", "empty but present is not a fallback")
	assert.Contains(t, out, "<strong>Total Population:</strong> 9000")
	assert.Contains(t, out, "<strong>Description:</strong> Medium-sized wild cat.")
	assert.Contains(t, out, "Medium-sized wild cat....")
}

func TestCard_EditAffordanceOnlyForOwner(t *testing.T) {
	assert.NotContains(t, render(t, Card(CardProps{Species: lynx()})), "Edit Species")

	out := render(t, Card(CardProps{Species: lynx(), IsOwner: true}))
	assert.Contains(t, out, "Edit Species")
	assert.Contains(t, out, `action="/species/lynx"`)
	assert.Contains(t, out, `name="scientific_name"`)
	assert.Contains(t, out, `value="Lynx lynx"`)
}

func TestEditDialog_ShowsRejectedSubmission(t *testing.T) {
	upd := domain.SpeciesUpdate{ScientificName: "", Kingdom: "Animalia", CommonName: "typed"}
	out := render(t, EditDialog(lynx(), &upd, "Scientific name is required"))

	assert.Contains(t, out, "<details")
	assert.Contains(t, out, " open")
	assert.Contains(t, out, "Scientific name is required")
	assert.Contains(t, out, `value="typed"`)
}

func TestPage(t *testing.T) {
	oak := domain.Species{ID: testutils.RecordID(domain.SpeciesTable, "oak"), ScientificName: "Quercus robur", Kingdom: "Plantae"}
	out := render(t, Page([]CardProps{{Species: lynx()}, {Species: oak}}))

	assert.Contains(t, out, ">Species</h1>")
	assert.Equal(t, 2, strings.Count(out, `class="m-4 w-72`))
	assert.Less(t, strings.Index(out, "Lynx lynx"), strings.Index(out, "Quercus robur"))

	assert.Equal(t, "<p>Error loading species</p>", render(t, LoadError()))
}
