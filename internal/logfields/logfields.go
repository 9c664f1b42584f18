package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyTokens     = "tokens"
	KeyBlocks     = "blocks"
	KeyCacheHit   = "cache_hit"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Tokens(n int) slog.Attr           { return slog.Int(KeyTokens, n) }
func Blocks(n int) slog.Attr           { return slog.Int(KeyBlocks, n) }
func CacheHit(hit bool) slog.Attr      { return slog.Bool(KeyCacheHit, hit) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
