package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/internal/orders"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
	"github.com/srijeyam/tyrestore-backend/pkg/mail"
	"github.com/srijeyam/tyrestore-backend/pkg/types"
)

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

type adminLookup interface {
	FindFirstAdmin(ctx context.Context) (*accounts.Account, error)
}

// Service composes and dispatches order emails.
type Service struct {
	mailer      mailSender
	admins      adminLookup
	adminEmails []string
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build a notifications
// service.
type ServiceParams struct {
	Mailer      mailSender
	AdminLookup adminLookup
	Notify      config.NotifyConfig
	Logger      *logger.Logger
}

// NewService constructs the notifications service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Mailer == nil {
		return nil, fmt.Errorf("mail sender is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		mailer:      params.Mailer,
		admins:      params.AdminLookup,
		adminEmails: params.Notify.AdminEmails,
		logg:        params.Logger,
	}, nil
}

type orderEmailData struct {
	OrderID       string
	Username      string
	Email         string
	Items         []orders.OrderItem
	Total         float64
	PaymentMethod string
	Address       types.ShippingAddress
}

// OrderPlaced sends the customer confirmation and the admin alert in
// parallel. The first delivery error is returned; the caller decides whether
// it matters.
func (s *Service) OrderPlaced(ctx context.Context, account *accounts.Account, order *orders.Order) error {
	data := orderEmailData{
		OrderID:       order.ID.Hex(),
		Username:      account.Username,
		Email:         account.Email,
		Items:         order.Items,
		Total:         order.TotalAmount,
		PaymentMethod: string(order.PaymentMethod),
		Address:       order.ShippingAddress,
	}

	customerHTML, err := render(customerOrderTmpl, data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render customer email")
	}
	adminHTML, err := render(adminOrderTmpl, data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render admin email")
	}

	recipients := s.adminRecipients(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.mailer.Send(gctx, mail.Message{
			To:      []string{account.Email},
			Subject: fmt.Sprintf("Order Confirmation - %s", data.OrderID),
			HTML:    customerHTML,
		})
	})
	for _, recipient := range recipients {
		recipient := recipient
		g.Go(func() error {
			return s.mailer.Send(gctx, mail.Message{
				To:      []string{recipient},
				Subject: fmt.Sprintf("New Order Received - %s", data.OrderID),
				HTML:    adminHTML,
			})
		})
	}

	return g.Wait()
}

// adminRecipients resolves the alert recipient list: the configured list
// wins, otherwise the oldest admin account is looked up. An empty result
// means no admin alert is sent.
func (s *Service) adminRecipients(ctx context.Context) []string {
	if len(s.adminEmails) > 0 {
		return s.adminEmails
	}
	if s.admins == nil {
		return nil
	}

	admin, err := s.admins.FindFirstAdmin(ctx)
	if err != nil {
		s.logg.Warn(ctx, "notifications.admin_lookup.failed")
		return nil
	}
	return []string{admin.Email}
}

// ConfirmationProduct is one line of the standalone confirmation payload.
type ConfirmationProduct struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// OrderDetails is the body of the standalone confirmation email.
type OrderDetails struct {
	OrderID           string                `json:"orderId" validate:"required"`
	Products          []ConfirmationProduct `json:"products" validate:"required,min=1,dive"`
	Total             float64               `json:"total" validate:"required,gt=0"`
	EstimatedDelivery string                `json:"estimatedDelivery"`
}

// ConfirmationRequest is the payload of the send-confirmation endpoint.
type ConfirmationRequest struct {
	CustomerEmail string       `json:"customerEmail" validate:"required,email"`
	OrderDetails  OrderDetails `json:"orderDetails" validate:"required"`
}

// SendConfirmation delivers a standalone confirmation email. Unlike order
// placement, delivery failure here is surfaced to the caller.
func (s *Service) SendConfirmation(ctx context.Context, req ConfirmationRequest) error {
	if len(req.OrderDetails.Products) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Order details must include products")
	}

	html, err := render(confirmationTmpl, req.OrderDetails)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render confirmation email")
	}

	msg := mail.Message{
		To:      []string{strings.TrimSpace(req.CustomerEmail)},
		Subject: fmt.Sprintf("Order Confirmation - %s", req.OrderDetails.OrderID),
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send confirmation email")
	}
	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
