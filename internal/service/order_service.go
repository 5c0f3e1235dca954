package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/just-java/internal/locale"
	"github.com/Lixing-Zhang/just-java/internal/mail"
	"github.com/Lixing-Zhang/just-java/internal/metrics"
	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/pricing"
	"github.com/Lixing-Zhang/just-java/internal/quantity"
	"github.com/Lixing-Zhang/just-java/internal/summary"
	"github.com/Lixing-Zhang/just-java/pkg/validator"
)

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrInvalidQuantity = errors.New("quantity out of range")
)

// Mailer hands off a composed order mail
type Mailer interface {
	Dispatch(ctx context.Context, msg mail.Message) (*mail.Receipt, error)
}

// OrderService prices orders, renders their summaries and hands them to the mailer
type OrderService struct {
	loc       *locale.Localizer
	formatter *summary.Formatter
	mailer    Mailer
	sessions  SessionReader
	log       *slog.Logger
}

// SessionReader is the part of the session store order submission needs
type SessionReader interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
}

// NewOrderService creates a new order service
func NewOrderService(loc *locale.Localizer, mailer Mailer, sessions SessionReader, log *slog.Logger) *OrderService {
	return &OrderService{
		loc:       loc,
		formatter: summary.NewFormatter(loc),
		mailer:    mailer,
		sessions:  sessions,
		log:       log,
	}
}

// SubmitOrder prices the order, composes its summary and hands the summary off
// as a mail. A missing mail handler is not an error: the confirmation carries a
// notice instead of a receipt.
func (s *OrderService) SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.OrderConfirmation, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	price := pricing.CalculatePrice(req.Quantity, req.HasWhippedCream, req.HasChocolate)

	order := models.Order{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Quantity:        req.Quantity,
		HasWhippedCream: req.HasWhippedCream,
		HasChocolate:    req.HasChocolate,
		Price:           price,
	}

	confirmation := &models.OrderConfirmation{
		Order:   order,
		Summary: s.formatter.CreateOrderSummary(order.Name, price, order.HasWhippedCream, order.HasChocolate, order.Quantity),
		Subject: s.formatter.EmailSubject(order.Name),
	}

	msg := mail.Message{Subject: confirmation.Subject, Body: confirmation.Summary}
	if req.Email != "" {
		msg.To = []string{req.Email}
	}

	receipt, err := s.mailer.Dispatch(ctx, msg)
	switch {
	case err == nil:
		confirmation.Mail = receipt
	case errors.Is(err, mail.ErrNoHandler):
		s.log.WarnContext(ctx, "no mail handler accepted order", "order_id", order.ID, "error", err)
		confirmation.Notice = s.loc.Text(locale.KeyNoMailHandler)
	default:
		return nil, fmt.Errorf("dispatch order mail: %w", err)
	}

	metrics.ObserveOrder(order.Quantity, price, order.HasWhippedCream, order.HasChocolate)
	s.log.InfoContext(ctx, "order submitted",
		"order_id", order.ID,
		"quantity", order.Quantity,
		"price", price,
	)

	return confirmation, nil
}

// SubmitSessionOrder submits an order using the quantity held by the session
func (s *OrderService) SubmitSessionOrder(ctx context.Context, sessionID string, req models.SessionOrderRequest) (*models.OrderConfirmation, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.SubmitOrder(ctx, models.OrderRequest{
		Name:            req.Name,
		Quantity:        session.Quantity,
		HasWhippedCream: req.HasWhippedCream,
		HasChocolate:    req.HasChocolate,
		Email:           req.Email,
	})
}

// Quote prices a prospective order without submitting it
func (s *OrderService) Quote(qty int, hasWhippedCream, hasChocolate bool) (*models.PriceQuote, error) {
	if err := quantity.Check(qty); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
	}

	price := pricing.CalculatePrice(qty, hasWhippedCream, hasChocolate)
	return &models.PriceQuote{
		Quantity:        qty,
		HasWhippedCream: hasWhippedCream,
		HasChocolate:    hasChocolate,
		UnitPrice:       pricing.UnitPrice(hasWhippedCream, hasChocolate),
		Price:           price,
		Formatted:       s.loc.FormatPrice(price),
	}, nil
}

// Menu describes the base price, toppings and quantity bounds
func (s *OrderService) Menu() models.Menu {
	return models.Menu{
		Currency:  s.loc.Currency().String(),
		BasePrice: pricing.BasePrice,
		Toppings: []models.Topping{
			{ID: "whippedCream", Name: "Whipped cream", Price: pricing.WhippedCreamPrice},
			{ID: "chocolate", Name: "Chocolate", Price: pricing.ChocolatePrice},
		},
		MinQuantity: quantity.Min,
		MaxQuantity: quantity.Max,
	}
}
