package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/just-java/internal/locale"
	"github.com/Lixing-Zhang/just-java/internal/mail"
	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/repository"
	"github.com/Lixing-Zhang/just-java/internal/service"
	"github.com/Lixing-Zhang/just-java/pkg/logger"
)

type fixture struct {
	sessions *repository.InMemorySessionRepository
	orders   *OrderHandler
	session  *SessionHandler
}

func newFixture(t *testing.T, mailHandlers ...mail.Handler) *fixture {
	t.Helper()

	loc, err := locale.New("en-US")
	require.NoError(t, err)

	log := logger.Discard()
	repo := repository.NewInMemorySessionRepository(time.Hour)
	dispatcher := mail.NewDispatcher(log, mailHandlers...)

	return &fixture{
		sessions: repo,
		orders:   NewOrderHandler(service.NewOrderService(loc, dispatcher, repo, log), log),
		session:  NewSessionHandler(service.NewSessionService(repo, loc, log), log),
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	f := newFixture(t, mail.NewMailtoHandler())

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(*testing.T, *bytes.Buffer)
	}{
		{
			name: "successful order",
			requestBody: models.OrderRequest{
				Name:            "Amy",
				Quantity:        5,
				HasWhippedCream: false,
				HasChocolate:    false,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body *bytes.Buffer) {
				var c models.OrderConfirmation
				require.NoError(t, json.NewDecoder(body).Decode(&c))
				assert.NotEmpty(t, c.Order.ID)
				assert.Equal(t, 25, c.Order.Price)
				assert.Contains(t, c.Summary, "Total: $25.00")
				require.NotNil(t, c.Mail)
				assert.Equal(t, "mailto", c.Mail.Handler)
				assert.Contains(t, c.Mail.URI, "subject=Just%20Java%20order%20for%20Amy")
			},
		},
		{
			name: "missing name",
			requestBody: models.OrderRequest{
				Quantity: 1,
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body *bytes.Buffer) {
				var resp ErrorResponse
				require.NoError(t, json.NewDecoder(body).Decode(&resp))
				assert.Equal(t, "Invalid order", resp.Error)
				assert.Equal(t, "is required", resp.Fields["name"])
			},
		},
		{
			name: "multi-line name",
			requestBody: models.OrderRequest{
				Name:     "Amy\nTotal: $0.00",
				Quantity: 1,
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body *bytes.Buffer) {
				var resp ErrorResponse
				require.NoError(t, json.NewDecoder(body).Decode(&resp))
				assert.Equal(t, "must be a single line of text", resp.Fields["name"])
			},
		},
		{
			name: "quantity above maximum",
			requestBody: models.OrderRequest{
				Name:     "Amy",
				Quantity: 101,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			requestBody:    map[string]interface{}{"name": "Amy", "quantity": 1, "sprinkles": true},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader(body))
			w := httptest.NewRecorder()

			f.orders.CreateOrder(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body)
			}
		})
	}
}

func TestOrderHandler_CreateOrder_NoMailHandler(t *testing.T) {
	f := newFixture(t)

	body, err := json.Marshal(models.OrderRequest{Name: "Amy", Quantity: 2})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.orders.CreateOrder(w, httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var c models.OrderConfirmation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Nil(t, c.Mail)
	assert.Equal(t, "No app available to handle Intent", c.Notice)
	assert.Equal(t, 10, c.Order.Price)
}

func TestOrderHandler_CreateSessionOrder(t *testing.T) {
	f := newFixture(t, mail.NewMailtoHandler())

	session, err := f.sessions.Create(context.Background())
	require.NoError(t, err)

	body := []byte(`{"name":"Amy","whippedCream":true}`)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/session/"+session.ID+"/order", bytes.NewReader(body)), "sessionId", session.ID)
	w := httptest.NewRecorder()

	f.orders.CreateSessionOrder(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var c models.OrderConfirmation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Equal(t, 2, c.Order.Quantity)
	assert.Equal(t, 12, c.Order.Price)
}

func TestOrderHandler_CreateSessionOrder_UnknownSession(t *testing.T) {
	f := newFixture(t, mail.NewMailtoHandler())

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/session/nope/order", bytes.NewReader([]byte(`{"name":"Amy"}`))), "sessionId", "nope")
	w := httptest.NewRecorder()

	f.orders.CreateSessionOrder(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Quote(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedPrice  int
	}{
		{"plain", "quantity=2", http.StatusOK, 10},
		{"whipped cream", "quantity=2&whippedCream=true", http.StatusOK, 12},
		{"chocolate", "quantity=2&chocolate=true", http.StatusOK, 14},
		{"both", "quantity=100&whippedCream=true&chocolate=true", http.StatusOK, 800},
		{"missing quantity", "", http.StatusBadRequest, 0},
		{"quantity out of range", "quantity=0", http.StatusBadRequest, 0},
		{"bad boolean", "quantity=1&chocolate=maybe", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			f.orders.Quote(w, httptest.NewRequest(http.MethodGet, "/api/price?"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var quote models.PriceQuote
				require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
				assert.Equal(t, tt.expectedPrice, quote.Price)
			}
		})
	}
}

func TestOrderHandler_Menu(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.orders.Menu(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var menu models.Menu
	require.NoError(t, json.NewDecoder(w.Body).Decode(&menu))
	assert.Equal(t, 5, menu.BasePrice)
	assert.Len(t, menu.Toppings, 2)
}
