package order

import (
	"context"
	"fmt"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlacedLine is a line item enriched with the product name, handed to the
// notifier so mail composition needs no further lookups.
type PlacedLine struct {
	ProductName string
	Qty         int
	UnitPrice   int
}

// Notifier receives best-effort notifications after state changes commit.
// Implementations must never block the caller or return errors.
type Notifier interface {
	OrderPlaced(o *order.Order, lines []PlacedLine)
	OrderShipped(o *order.Order, note string)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) OrderPlaced(*order.Order, []PlacedLine) {}
func (NopNotifier) OrderShipped(*order.Order, string)      {}

// Service handles order placement and fulfilment operations
type Service struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	txScope     TransactionScope
	notifier    Notifier
}

// NewService creates a new order Service
func NewService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	notifier Notifier,
) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txScope:     txScope,
		notifier:    notifier,
	}
}

// mergedLine keeps the first-seen position of each product so placement is
// deterministic regardless of map iteration order.
type mergedLine struct {
	productID uuid.UUID
	qty       int
}

// Place validates the cart, deducts stock, and persists the order with its
// line items in one transaction. Any failure leaves stock and the order
// tables untouched. On success a confirmation is dispatched asynchronously.
func (s *Service) Place(ctx context.Context, req PlaceOrderRequest) (*OrderCreatedResponse, error) {
	merged, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		order.CustomerInfo{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		order.ShippingInfo{
			Method:         catalog.ShippingMethod(req.ShippingMethod),
			Address:        req.ShippingAddress,
			PostAddress:    req.ShippingPostAddress,
			RecipientName:  req.RecipientName,
			RecipientPhone: req.RecipientPhone,
			CVSBrand:       req.CVSBrand,
			CVSStoreID:     req.CVSStoreID,
			CVSStoreName:   req.CVSStoreName,
		},
	)
	if err != nil {
		return nil, err
	}

	var placed []PlacedLine

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := make([]uuid.UUID, len(merged))
		for i, line := range merged {
			ids[i] = line.productID
		}

		products, err := repos.Products().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		total := 0
		placed = placed[:0]
		for _, line := range merged {
			p, ok := byID[line.productID]
			if !ok {
				return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Invalid product_id: %s", line.productID))
			}
			if !p.IsActive {
				return shared.NewDomainError("PRODUCT_INACTIVE", fmt.Sprintf("Product not active: %s", p.ID))
			}
			if line.qty > p.StockQty {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock: product_id=%s, stock=%d, requested=%d", p.ID, p.StockQty, line.qty))
			}

			if err := o.AddItem(p.ID, line.qty, p.Price); err != nil {
				return err
			}
			total += p.Price * line.qty
			placed = append(placed, PlacedLine{ProductName: p.Name, Qty: line.qty, UnitPrice: p.Price})
		}
		o.TotalAmount = total

		// The guarded decrement is the authoritative stock check; the read
		// above only produces a friendlier error message.
		for _, line := range merged {
			if err := repos.Products().DecrementStock(ctx, line.productID, line.qty); err != nil {
				return err
			}
		}

		return repos.Orders().Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderPlaced(o, placed)

	return &OrderCreatedResponse{OrderID: o.ID, TotalAmount: o.TotalAmount}, nil
}

// Get retrieves a single order
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetItems retrieves the line items of an order
func (s *Service) GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItemResponse, error) {
	items, err := s.orderRepo.FindItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = ToOrderItemResponse(item)
	}
	return out, nil
}

// List retrieves orders newest first for the admin console
func (s *Service) List(ctx context.Context, limit, offset int) ([]OrderResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := s.orderRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out, nil
}

// GetDetail retrieves an order with its items joined to product names
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (*OrderDetailResponse, error) {
	o, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ProductID
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			names[p.ID] = p.Name
		}
	}

	detail := &OrderDetailResponse{
		Order: ToOrderResponse(o),
		Items: make([]OrderItemDetail, len(o.Items)),
	}
	for i, item := range o.Items {
		detail.Items[i] = OrderItemDetail{
			ProductID: item.ProductID,
			Name:      names[item.ProductID],
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		}
	}
	return detail, nil
}

// Ship marks an order shipped and dispatches the shipment notice
func (s *Service) Ship(ctx context.Context, id uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.MarkShipped(req.TrackingNo)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.notifier.OrderShipped(o, req.Note)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus moves an order to the given status
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.SetStatus(order.Status(status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// mergeLines collapses duplicate product ids, summing quantities and
// keeping the first-seen position of each product.
func mergeLines(lines []OrderLine) ([]mergedLine, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Order must contain at least one item")
	}

	index := make(map[uuid.UUID]int, len(lines))
	merged := make([]mergedLine, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return nil, shared.NewDomainError("INVALID_QTY", "qty must be > 0")
		}
		if pos, ok := index[line.ProductID]; ok {
			merged[pos].qty += line.Qty
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, mergedLine{productID: line.ProductID, qty: line.Qty})
	}
	return merged, nil
}
