package stream

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/control"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type keyHelp struct {
	Key  string
	Name string
}

type pageData struct {
	Width   int
	Height  int
	HUD     bool
	Keys    []keyHelp
	Presets []string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	data := pageData{
		Width:   s.opts.Width,
		Height:  s.opts.Height,
		HUD:     s.opts.HUD,
		Presets: config.ListPresets(),
	}
	for _, b := range control.Keys() {
		data.Keys = append(data.Keys, keyHelp{Key: b.Key, Name: b.Command.String()})
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
