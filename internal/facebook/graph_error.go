package facebook

import "fmt"

// GraphError is the error envelope the Graph API returns on failure.
//
// The fbtrace_id is worth surfacing: Meta support asks for it when
// debugging token or permission problems.
type GraphError struct {
	// Message is the human readable error description.
	Message string `json:"message"`

	// Type classifies the error, e.g. "OAuthException".
	Type string `json:"type"`

	// Code is the top-level error code, e.g. 190 for bad tokens.
	Code int `json:"code"`

	// Subcode refines Code, e.g. 460 for a password change.
	Subcode int `json:"error_subcode"`

	// TraceID is Meta's request trace, useful in support tickets.
	TraceID string `json:"fbtrace_id"`

	// HTTPStatus is the status code the envelope arrived with.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface. The output carries everything
// needed to diagnose the failure and nothing from the request itself.
func (e *GraphError) Error() string {
	msg := fmt.Sprintf("graph api error: %s (type %s, code %d", e.Message, e.Type, e.Code)
	if e.Subcode != 0 {
		msg += fmt.Sprintf(", subcode %d", e.Subcode)
	}
	msg += ")"
	if e.TraceID != "" {
		msg += fmt.Sprintf(" fbtrace_id=%s", e.TraceID)
	}
	return msg
}

// IsAuthError reports whether the failure points at the page token
// rather than the request, meaning a new token is needed.
func (e *GraphError) IsAuthError() bool {
	return e.Type == "OAuthException" || e.Code == 190
}
