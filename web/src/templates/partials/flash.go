package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FlashData holds the one-shot messages shown at the top of a page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// Flash renders the flash messages as dismissible banners.
func Flash(data FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Empty() {
			return nil
		}
		if _, err := io.WriteString(w, `<div id="flash-messages" class="space-y-2 mb-6">`); err != nil {
			return err
		}
		for _, msg := range data.Success {
			if err := writeBanner(w, "bg-green-100 text-green-800 border-green-300", msg); err != nil {
				return err
			}
		}
		for _, msg := range data.Error {
			if err := writeBanner(w, "bg-red-100 text-red-800 border-red-300", msg); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeBanner(w io.Writer, classes, msg string) error {
	_, err := io.WriteString(w, `<div role="alert" class="border rounded-lg px-4 py-3 `+classes+`">`+
		templ.EscapeString(msg)+`</div>`)
	return err
}
