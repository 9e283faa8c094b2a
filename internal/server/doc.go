// Package server provides HTTP routing, middleware, and the local callback
// server backing the OAuth consent step.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the authorization-code redirect. It validates
// the state parameter (CSRF protection), requires a code in the query
// string, and sends the redirect URL through a channel. It only processes
// one callback to prevent replay. The code exchange is deliberately NOT
// performed here: the flow controller in internal/auth owns the
// ExchangingCode step, so the handler stays a thin transport adapter.
//
// # Consent Step
//
// [BrowserConsent] ties it together for CLI use: it starts a temporary
// HTTP server on the configured host/port, opens the system browser to the
// authorization URL, waits (bounded) for the callback, and shuts the
// server down. It implements the auth.Consenter interface.
package server
