package http

import (
	_ "embed"
	"net/http"
)

//go:embed static/site.css
var siteCSSData []byte

func siteCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(siteCSSData)
}
