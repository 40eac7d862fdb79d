package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/fieldnotes/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdaptGomponentToTempl(t *testing.T) {
	var buf bytes.Buffer
	err := view.AdaptGomponentToTempl(P(Class("note"))).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, `<p class="note"></p>`, buf.String())
}

func TestAdaptTemplToGomponent_PassesContext(t *testing.T) {
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, ctx.Value(ctxKey{}).(string))
		return err
	})
	ctx := context.WithValue(context.Background(), ctxKey{}, "from-request")

	var buf bytes.Buffer
	require.NoError(t, Div(view.AdaptTemplToGomponent(ctx, component)).Render(&buf))
	assert.Equal(t, "<div>from-request</div>", buf.String())
}
