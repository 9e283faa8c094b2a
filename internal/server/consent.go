package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackplay/internal/shared"
)

// BrowserConsent implements the flow controller's consent step with a
// temporary local HTTP server bound to the redirect URI. It opens the
// system browser to the authorization URL and waits for the provider to
// redirect back with the code, or for cancellation/timeout.
type BrowserConsent struct {
	host    string
	port    int
	timeout time.Duration
	logger  *log.Logger

	// openBrowser is swapped out in tests.
	openBrowser func(url string) error
}

// NewBrowserConsent creates a consent step listening on host:port. The
// wait is bounded by timeout, defaulting to two minutes.
func NewBrowserConsent(host string, port int, timeout time.Duration, logger *log.Logger) *BrowserConsent {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &BrowserConsent{
		host:        host,
		port:        port,
		timeout:     timeout,
		logger:      logger,
		openBrowser: shared.OpenBrowser,
	}
}

// Consent starts the callback server, opens the browser to authURL, and
// resolves with the redirect URL once the callback arrives.
func (c *BrowserConsent) Consent(ctx context.Context, authURL, state string) (string, error) {
	handler := NewCallbackHandler(state)
	router := NewBasicRouter()
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", c.host, c.port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		if c.logger != nil {
			c.logger.Infof("starting consent callback server at %v", serverAddr)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if err := c.openBrowser(authURL); err != nil {
		if c.logger != nil {
			c.logger.Warnf("failed to open browser automatically %v", err)
			c.logger.Infof("open this URL in your browser: %s", authURL)
		}
	}

	timeout := time.NewTimer(c.timeout)
	defer timeout.Stop()

	var result CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return "", fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		c.shutdown(httpServer)
		return "", fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, c.timeout)
	case <-ctx.Done():
		c.shutdown(httpServer)
		return "", ctx.Err()
	}

	c.shutdown(httpServer)

	if result.Error() != nil {
		return "", result.Error()
	}

	return result.RedirectURL, nil
}

func (c *BrowserConsent) shutdown(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && c.logger != nil {
		c.logger.Warn("error shutting down server", "error", err)
	}
}
