package rest

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var presentColors = []string{"red", "blue", "purple"}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func star(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, `<div id="star" class="lit"></div>`)
}

func present(w http.ResponseWriter, r *http.Request) {
	color := html.EscapeString(chi.URLParam(r, "color"))

	for i, known := range presentColors {
		if known != color {
			continue
		}

		next := presentColors[(i+1)%len(presentColors)]
		writeHTML(w, fmt.Sprintf(`<div class="present %s" hx-get="/23/present/%s" hx-swap="outerHTML">
    <div class="ribbon"></div>
    <div class="ribbon"></div>
    <div class="ribbon"></div>
    <div class="ribbon"></div>
</div>`, color, next))

		return
	}

	w.WriteHeader(http.StatusTeapot)
}

func ornament(w http.ResponseWriter, r *http.Request) {
	state := html.EscapeString(chi.URLParam(r, "state"))
	n := html.EscapeString(chi.URLParam(r, "n"))

	var class, next string
	switch state {
	case "on":
		class, next = "ornament on", "off"
	case "off":
		class, next = "ornament", "on"
	default:
		w.WriteHeader(http.StatusTeapot)
		return
	}

	writeHTML(w, fmt.Sprintf(
		`<div class="%s" id="ornament%s" hx-trigger="load delay:2s once" hx-get="/23/ornament/%s/%s" hx-swap="outerHTML"></div>`,
		class, n, next, n,
	))
}
