package rest

import "net/http"

const seekURL = "https://www.youtube.com/watch?v=9Gc4QTqslN4"

func helloBird(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Hello, bird!")
}

func seek(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, seekURL, http.StatusFound)
}

func ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
