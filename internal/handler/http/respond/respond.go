// Package respond writes JSON responses for the blog API.
// Error helpers decide what may be shown to the admin panel and mask
// credentials (GitHub tokens, service-account keys) before anything is logged.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// internalMessage replaces error details the client must not see.
const internalMessage = "internal server error"

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"post not found"`
}

// JSON writes v with the given status. HTML is left unescaped because post
// bodies carry markup the admin panel renders as-is.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// ヘッダー送信済みのためログのみ
		slog.Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Message writes an ErrorBody carrying msg.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// clientFragments mark messages that describe the request, not the server.
var clientFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must",
	"cannot be",
	"too long",
	"too large",
	"unsupported",
}

// SafeError answers with err's message when code is a 4xx and the message
// reads like a validation failure. Anything else is answered with a generic
// message and logged with credentials masked. A nil err writes nothing.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if code < http.StatusInternalServerError && describesRequest(msg) {
		Message(w, code, msg)
		return
	}

	slog.Error("request failed",
		slog.Int("code", code),
		slog.String("status", http.StatusText(code)),
		slog.String("error", SanitizeString(msg)))
	Message(w, code, internalMessage)
}

func describesRequest(msg string) bool {
	lower := strings.ToLower(msg)
	for _, f := range clientFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
