package live

import (
	"bytes"
	"fmt"
	"net/http"
)

const (
	// SocketPath is where browsers open the reload socket
	SocketPath = "/__folio/ws"
	// ScriptPath serves the reload client
	ScriptPath = "/__folio/reload.js"
)

const reloadScript = `(function () {
  var overlay;
  function show(msg) {
    if (!overlay) {
      overlay = document.createElement("pre");
      overlay.style.cssText = "position:fixed;inset:0;margin:0;padding:2rem;z-index:99999;" +
        "background:rgba(20,0,0,.9);color:#ffb4b4;font:14px/1.5 monospace;white-space:pre-wrap";
      document.body.appendChild(overlay);
    }
    overlay.textContent = msg;
  }
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + %q);
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type === "RELOAD") location.reload();
      else if (msg.type === "ERROR") show(msg.error);
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
`

// ServeScript serves the browser side of live reload
func ServeScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprintf(w, reloadScript, SocketPath)
}

var scriptTag = []byte(`<script src="` + ScriptPath + `"></script>`)

// InjectScript adds the reload client to an HTML page, before </body> when
// present and at the end otherwise
func InjectScript(page []byte) []byte {
	if bytes.Contains(page, scriptTag) {
		return page
	}
	i := bytes.LastIndex(bytes.ToLower(page), []byte("</body>"))
	if i < 0 {
		return append(append([]byte(nil), page...), scriptTag...)
	}
	out := make([]byte, 0, len(page)+len(scriptTag))
	out = append(out, page[:i]...)
	out = append(out, scriptTag...)
	out = append(out, page[i:]...)
	return out
}
