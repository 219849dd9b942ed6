package preview

import (
	"net/http"
	"strings"
)

const (
	scriptTag     = `<script async src="/livereload.js"></script>`
	maxInjectSize = 512 * 1024
)

// injectScript is middleware that adds the live reload client to HTML
// responses, just before </body>.
func injectScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if p != "" && !strings.HasSuffix(p, "/") && !strings.HasSuffix(p, ".html") {
			next.ServeHTTP(w, r)
			return
		}
		inj := &injector{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(inj, r)
		inj.finalize()
	})
}

// injector buffers an HTML response so the script can be inserted. Bodies
// that are not HTML or exceed maxInjectSize pass through unchanged.
type injector struct {
	http.ResponseWriter
	statusCode    int
	buffer        []byte
	buffering     bool
	headerWritten bool
	passthrough   bool
}

func (l *injector) WriteHeader(code int) {
	l.statusCode = code
	if l.passthrough {
		l.ResponseWriter.WriteHeader(code)
		l.headerWritten = true
	}
}

func (l *injector) Write(data []byte) (int, error) {
	if !l.passthrough && !l.buffering {
		ct := l.Header().Get("Content-Type")
		if l.statusCode != http.StatusOK || (ct != "" && !strings.Contains(ct, "text/html")) {
			l.startPassthrough()
			return l.ResponseWriter.Write(data)
		}
		l.buffering = true
	}
	if l.passthrough {
		return l.ResponseWriter.Write(data)
	}

	if len(l.buffer)+len(data) > maxInjectSize {
		l.startPassthrough()
		if len(l.buffer) > 0 {
			if _, err := l.ResponseWriter.Write(l.buffer); err != nil {
				return 0, err
			}
			l.buffer = nil
		}
		return l.ResponseWriter.Write(data)
	}
	l.buffer = append(l.buffer, data...)
	return len(data), nil
}

func (l *injector) startPassthrough() {
	l.passthrough = true
	l.Header().Del("Content-Length")
	l.ResponseWriter.WriteHeader(l.statusCode)
	l.headerWritten = true
}

// finalize must be called after the handler returns.
func (l *injector) finalize() {
	if l.passthrough {
		return
	}
	if len(l.buffer) == 0 {
		if !l.headerWritten {
			l.ResponseWriter.WriteHeader(l.statusCode)
		}
		return
	}

	body := injectBeforeBody(string(l.buffer))
	l.Header().Del("Content-Length")
	l.ResponseWriter.WriteHeader(l.statusCode)
	_, _ = l.ResponseWriter.Write([]byte(body))
}

// injectBeforeBody inserts the script tag before the last </body>, or
// appends it when the document has none.
func injectBeforeBody(html string) string {
	idx := lastIndexASCIIFold(html, "</body>")
	if idx < 0 {
		return html + scriptTag
	}
	return html[:idx] + scriptTag + html[idx:]
}

// lastIndexASCIIFold is strings.LastIndex ignoring ASCII case. The needle
// must be lower case ASCII. Offsets refer to s itself.
func lastIndexASCIIFold(s, needle string) int {
	for i := len(s) - len(needle); i >= 0; i-- {
		match := true
		for j := 0; j < len(needle); j++ {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
