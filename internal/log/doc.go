// Package log builds the slog loggers metrixbot uses, with automatic
// masking of credentials in everything they write.
//
// # Masking
//
// The SecureHandler masks, before any record reaches its sink:
//   - The Facebook page credentials (page ID, page access token)
//   - request headers such as Authorization, Cookie, and X-Api-Key
//   - Values that are token-shaped on their own (Graph API "EAA..."
//     tokens, JWTs, bearer tokens, long opaque keys)
//   - Secrets embedded inside longer strings, such as an access_token
//     query parameter in a logged URL or request body
//
// Masking is unconditional: verbose mode raises the level to debug but
// never reveals a credential. The bot runs unattended and its logs end
// up in CI output, so a leaked token would sit in logs nobody re-reads.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose
//
//	logger.Info("publishing post",
//	    "access_token", token,      // written as "***REDACTED***"
//	    "url", "https://graph.facebook.com/v23.0/me/feed",
//	)
//
//	slog.SetDefault(logger)
package log
