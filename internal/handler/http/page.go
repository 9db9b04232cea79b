package http

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
)

type sharePageData struct {
	Title     string
	Body      template.HTML
	UpdatedAt string
	Editable  bool
	StreamURL string
	Missing   bool
}

// newSharePageData trusts body: it is produced by the markdown renderer,
// which does not pass raw HTML through.
func newSharePageData(note models.Note, body, token string) sharePageData {
	return sharePageData{
		Title:     note.Title,
		Body:      template.HTML(body),
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC1123),
		Editable:  note.AllowPublicEdit,
		StreamURL: "/api/share/" + token + "/ws",
	}
}

var sharePageTemplate = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{max-width:46rem;margin:2rem auto;padding:0 1rem;font-family:system-ui,sans-serif;line-height:1.6;color:#222}
pre{background:#f5f5f5;padding:.75rem;overflow:auto}
blockquote{border-left:3px solid #ccc;margin-left:0;padding-left:1rem;color:#555}
.meta{color:#888;font-size:.85rem}
</style>
</head>
<body>
{{if .Missing}}
<h1>{{.Title}}</h1>
{{else}}
<h1>{{.Title}}</h1>
<p class="meta">Updated {{.UpdatedAt}}{{if .Editable}} · anyone with the link can edit{{end}}</p>
<article>{{.Body}}</article>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + {{.StreamURL}});
  ws.onmessage = function () { location.reload(); };
})();
</script>
{{end}}
</body>
</html>
`))

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, data sharePageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writePage").Msg("failed to render share page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
