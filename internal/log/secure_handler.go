package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces every masked value in log output.
const MaskValue = "***REDACTED***"

// exactSensitiveKeys are attribute keys masked on exact (lowercased)
// match. The Facebook page credentials appear under several spellings
// depending on which layer logged them.
var exactSensitiveKeys = map[string]bool{
	// Facebook page credentials, the two secrets this bot handles
	"fb_page_token": true,
	"page_token":    true,
	"fb_page_id":    true,
	"page_id":       true,

	// Header names
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"proxy-authorization": true,

	// Generic credential spellings
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"refresh_token": true,
	"secret_key":    true,
	"secretkey":     true,
	"session":       true,
	"session_id":    true,
	"sessionid":     true,
	"credential":    true,
	"credentials":   true,
	"auth":          true,
}

// sensitiveKeywords mask any key that merely contains them, so
// "graph_token" or "page_password" are caught without listing every
// spelling. The bare "key" keyword is deliberately absent: it matched
// harmless words like "primary_key" and "keyboard".
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "auth", "credential",
}

// secretValuePatterns match values that are a secret in their entirety,
// whatever key they were logged under.
var secretValuePatterns = []*regexp.Regexp{
	// Facebook Graph API tokens ("EAA..." page/user access tokens)
	regexp.MustCompile(`^EAA[A-Za-z0-9]{16,}$`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Bearer and basic auth header values
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// Long opaque alphanumeric keys
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
}

// embeddedSecretPatterns match secrets carried inside longer strings,
// typically a URL or form body that ended up in an error message. Only
// the secret part is replaced so the log line stays useful.
var embeddedSecretPatterns = []*regexp.Regexp{
	// access_token=... in query strings and form-encoded bodies
	regexp.MustCompile(`(?i)(access_token=)[^&\s]+`),

	// Bare Graph API tokens embedded mid-string
	regexp.MustCompile(`EAA[A-Za-z0-9]{16,}`),
}

// SecureHandler is an slog.Handler that masks credentials before the
// record reaches the wrapped handler, whatever that handler writes to.
// Masking happens on the record, so text and JSON sinks behave the
// same and nothing downstream can see the original value.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler with credential masking. A nil
// handler falls back to slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates the level decision to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's message and attributes, then hands the
// rebuilt record to the wrapped handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, maskEmbeddedSecrets(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs masks the pre-bound attributes before binding them, so a
// logger built with logger.With("token", v) is as safe as one that
// logs the attribute per call.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup keeps masking active inside the group.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks one attribute. Group values are walked recursively;
// a sensitive key masks the whole value, and string values are still
// checked on their own in case a secret was logged under an innocent
// key.
func (h *SecureHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		masked := make([]slog.Attr, len(members))
		for i, member := range members {
			masked[i] = h.maskAttr(member)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if sensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		if looksLikeSecret(v) {
			return slog.String(a.Key, MaskValue)
		}
		if cleaned := maskEmbeddedSecrets(v); cleaned != v {
			return slog.String(a.Key, cleaned)
		}
	}

	return a
}

// sensitiveKey reports whether the attribute key names a credential,
// by exact match or by containing a credential keyword.
func sensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if exactSensitiveKeys[key] {
		return true
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// looksLikeSecret reports whether the whole value is token-shaped.
func looksLikeSecret(value string) bool {
	for _, pattern := range secretValuePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// maskEmbeddedSecrets replaces secrets found inside a longer string.
// An "access_token=" prefix is kept so the line still shows which
// parameter was masked.
func maskEmbeddedSecrets(value string) string {
	for _, pattern := range embeddedSecretPatterns {
		value = pattern.ReplaceAllStringFunc(value, func(match string) string {
			if idx := strings.IndexByte(match, '='); idx >= 0 {
				return match[:idx+1] + MaskValue
			}
			return MaskValue
		})
	}
	return value
}

// NewSecureLogger returns a text-format logger with credential masking,
// for the interactive commands. Verbose selects debug level, otherwise
// only warnings and errors are written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger returns a JSON-format logger with credential
// masking. The watch daemon uses it so its lines can be shipped to
// structured log aggregation.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
