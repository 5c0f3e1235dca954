package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/just-java/internal/config"
	"github.com/Lixing-Zhang/just-java/internal/mail"
	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	f := newFixture(t, mail.NewMailtoHandler())
	cfg := &config.Config{
		Auth:      config.AuthConfig{APIKeys: []string{"apitest"}},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
	log := logger.Discard()

	return NewRouter(cfg, log, NewHealthHandler(log, "test"), f.orders, f.session)
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRouter_OrderRequiresAPIKey(t *testing.T) {
	router := newTestRouter(t)
	body := `{"name":"Amy","quantity":3,"chocolate":true}`

	w := serve(router, http.MethodPost, "/api/order", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodPost, "/api/order", body, map[string]string{"api_key": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(router, http.MethodPost, "/api/order", body, map[string]string{"api_key": "apitest"})
	require.Equal(t, http.StatusOK, w.Code)

	var c models.OrderConfirmation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Equal(t, 21, c.Order.Price)
	assert.Contains(t, c.Summary, "Add chocolate? true")
	assert.Contains(t, c.Summary, "Total: $21.00")
}

func TestRouter_SessionFlow(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodPost, "/api/session", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var s models.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, 2, s.Quantity)

	base := "/api/session/" + s.ID

	w = serve(router, http.MethodPost, base+"/increment", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, 3, s.Quantity)

	w = serve(router, http.MethodPost, base+"/order", `{"name":"Bo","whippedCream":true,"chocolate":true}`, map[string]string{"api_key": "apitest"})
	require.Equal(t, http.StatusOK, w.Code)
	var c models.OrderConfirmation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Equal(t, 24, c.Order.Price)
	assert.Equal(t, "Just Java order for Bo", c.Subject)

	w = serve(router, http.MethodDelete, base, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PriceAndMenu(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodGet, "/api/price?quantity=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quote models.PriceQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.Equal(t, 25, quote.Price)
	assert.Equal(t, "$25.00", quote.Formatted)

	w = serve(router, http.MethodGet, "/api/menu", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	serve(router, http.MethodGet, "/api/menu", "", nil)
	w := serve(router, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
