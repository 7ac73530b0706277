package notification

import (
	"fmt"
	"strings"
	"sync"

	appOrder "github.com/akau-shop/backend/internal/application/order"
	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender delivers a single plain-text email.
// Implementations can support different transports (SMTP, API relay, etc.)
type Sender interface {
	Send(to, subject, body string) error
}

// message is one queued delivery
type message struct {
	to      string
	subject string
	body    string
}

// Service composes and dispatches order emails. Deliveries are queued and
// sent from a single background worker; a full queue drops the message
// rather than block order placement.
type Service struct {
	logger     *zap.Logger
	sender     Sender
	shopName   string
	adminEmail string

	queue     chan message
	wg        sync.WaitGroup
	closeOnce sync.Once
}

const defaultQueueSize = 64

// NewService creates a notification Service and starts its dispatch worker.
// adminEmail may be empty, in which case admin alerts are skipped.
func NewService(logger *zap.Logger, sender Sender, shopName, adminEmail string) *Service {
	s := &Service{
		logger:     logger,
		sender:     sender,
		shopName:   shopName,
		adminEmail: adminEmail,
		queue:      make(chan message, defaultQueueSize),
	}
	s.wg.Add(1)
	go s.dispatch()
	return s
}

// OrderPlaced sends the buyer confirmation and the admin new-order alert
func (s *Service) OrderPlaced(o *order.Order, lines []appOrder.PlacedLine) {
	subject, body := s.composeBuyerConfirmation(o, lines)
	s.enqueue(o.CustomerEmail, subject, body)

	if s.adminEmail != "" {
		subject, body = s.composeAdminAlert(o, lines)
		s.enqueue(s.adminEmail, subject, body)
	}
}

// OrderShipped sends the shipment notice to the buyer
func (s *Service) OrderShipped(o *order.Order, note string) {
	subject, body := s.composeShipmentNotice(o, note)
	s.enqueue(o.CustomerEmail, subject, body)
}

// Close stops accepting messages, drains the queue, and waits for the
// worker to finish.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *Service) enqueue(to, subject, body string) {
	if to == "" {
		return
	}
	defer func() {
		// Enqueue after Close is a caller bug; log it instead of crashing.
		if r := recover(); r != nil {
			s.logger.Warn("notification enqueued after close",
				zap.String("subject", subject))
		}
	}()
	select {
	case s.queue <- message{to: to, subject: subject, body: body}:
	default:
		s.logger.Warn("notification queue full, dropping message",
			zap.String("to", to),
			zap.String("subject", subject))
	}
}

func (s *Service) dispatch() {
	defer s.wg.Done()
	for m := range s.queue {
		if err := s.sender.Send(m.to, m.subject, m.body); err != nil {
			s.logger.Warn("email delivery failed",
				zap.String("to", m.to),
				zap.String("subject", m.subject),
				zap.Error(err))
			continue
		}
		s.logger.Info("email sent",
			zap.String("to", m.to),
			zap.String("subject", m.subject))
	}
}

func (s *Service) composeBuyerConfirmation(o *order.Order, lines []appOrder.PlacedLine) (string, string) {
	subject := fmt.Sprintf("[%s] We received your order #%s", s.shopName, orderRef(o.ID))

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", o.CustomerName)
	b.WriteString("We have received your order and will process and ship it as soon as possible.\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Order total: %d TWD\n\n", o.TotalAmount)

	b.WriteString("Items\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s x %d (unit price %d)\n", l.ProductName, l.Qty, l.UnitPrice)
	}
	b.WriteString("\n")

	b.WriteString("Delivery\n")
	fmt.Fprintf(&b, "Method: %s\n", shippingLabel(o.ShippingMethod))
	writeBuyerDelivery(&b, o)

	b.WriteString("\nIf you need to change your order or have any questions, just reply to this email.\n")
	return subject, b.String()
}

func (s *Service) composeAdminAlert(o *order.Order, lines []appOrder.PlacedLine) (string, string) {
	subject := fmt.Sprintf("[%s] New order #%s (%d TWD)", s.shopName, orderRef(o.ID), o.TotalAmount)

	var b strings.Builder
	b.WriteString("A new order has been placed.\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Total: %d TWD\n\n", o.TotalAmount)

	b.WriteString("Buyer\n")
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	if o.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	}
	b.WriteString("\n")

	b.WriteString("Delivery\n")
	fmt.Fprintf(&b, "Method: %s\n", shippingLabel(o.ShippingMethod))
	writeAdminDelivery(&b, o)
	b.WriteString("\n")

	b.WriteString("Items\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s x %d (unit price %d)\n", l.ProductName, l.Qty, l.UnitPrice)
	}
	return subject, b.String()
}

func (s *Service) composeShipmentNotice(o *order.Order, note string) (string, string) {
	subject := fmt.Sprintf("[%s] Your order #%s has shipped", s.shopName, orderRef(o.ID))

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", o.CustomerName)
	b.WriteString("Your order has been handed over for delivery. Thank you for your purchase!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Order total: %d TWD\n\n", o.TotalAmount)

	b.WriteString("Delivery\n")
	fmt.Fprintf(&b, "Method: %s\n", shippingLabel(o.ShippingMethod))
	writeBuyerDelivery(&b, o)

	if o.TrackingNo != nil && *o.TrackingNo != "" {
		fmt.Fprintf(&b, "Tracking number: %s\n", *o.TrackingNo)
	}
	if note = strings.TrimSpace(note); note != "" {
		b.WriteString("\nNote\n")
		b.WriteString(note)
		b.WriteString("\n")
	}

	b.WriteString("\nIf you have any questions, just reply to this email and we will help you out.\n")
	return subject, b.String()
}

// writeBuyerDelivery writes the delivery detail lines a buyer should see
func writeBuyerDelivery(b *strings.Builder, o *order.Order) {
	switch {
	case o.ShippingMethod.IsCVS():
		store := strPtr(o.CVSStoreName)
		if id := strPtr(o.CVSStoreID); id != "" {
			store = fmt.Sprintf("%s (%s)", store, id)
		}
		if store == "" {
			store = "(not provided)"
		}
		fmt.Fprintf(b, "Store: %s\n", strings.TrimSpace(store))
	default:
		addr := strPtr(o.ShippingPostAddress)
		if addr == "" {
			addr = o.ShippingAddress
		}
		if addr == "" {
			addr = "(not provided)"
		}
		fmt.Fprintf(b, "Address: %s\n", addr)
	}
}

// writeAdminDelivery adds the recipient contact lines the shop owner needs
// to prepare the parcel.
func writeAdminDelivery(b *strings.Builder, o *order.Order) {
	recipient := strPtr(o.RecipientName)
	if recipient == "" {
		recipient = o.CustomerName
	}
	phone := strPtr(o.RecipientPhone)
	if phone == "" {
		phone = o.CustomerPhone
	}

	fmt.Fprintf(b, "Recipient: %s\n", recipient)
	if phone != "" {
		fmt.Fprintf(b, "Phone: %s\n", phone)
	}

	if o.ShippingMethod.IsCVS() {
		parts := []string{}
		if v := strPtr(o.CVSBrand); v != "" {
			parts = append(parts, v)
		}
		if v := strPtr(o.CVSStoreName); v != "" {
			parts = append(parts, v)
		}
		store := strings.Join(parts, " ")
		if id := strPtr(o.CVSStoreID); id != "" {
			store = fmt.Sprintf("%s (%s)", store, id)
		}
		if store = strings.TrimSpace(store); store == "" {
			store = o.ShippingAddress
		}
		fmt.Fprintf(b, "Store: %s\n", store)
		return
	}

	addr := strPtr(o.ShippingPostAddress)
	if addr == "" {
		addr = o.ShippingAddress
	}
	fmt.Fprintf(b, "Address: %s\n", addr)
}

func shippingLabel(m catalog.ShippingMethod) string {
	switch m {
	case catalog.ShippingMethodPost:
		return "Postal mail"
	case catalog.ShippingMethodCourier:
		return "Home courier"
	case catalog.ShippingMethodCVS711:
		return "7-11 pickup"
	case catalog.ShippingMethodCVSFamily:
		return "FamilyMart pickup"
	default:
		return string(m)
	}
}

// orderRef is the short human-facing order reference used in subjects
func orderRef(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
