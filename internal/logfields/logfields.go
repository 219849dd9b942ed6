package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyItem       = "item"
	KeyKind       = "kind"
	KeyLink       = "link"
	KeyTemplate   = "template"
	KeyCount      = "count"
	KeyName       = "name"
	KeyURL        = "url"
	KeyAddr       = "addr"
	KeyEvent      = "event"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyClients    = "clients"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Item(rel string) slog.Attr       { return slog.String(KeyItem, rel) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Clients(n int) slog.Attr         { return slog.Int(KeyClients, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
