package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/printshop/internal/checkout/domain"
	"github.com/dwikikusuma/printshop/internal/pricing"
	"github.com/dwikikusuma/printshop/pkg/keylock"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrStepLocked       = errors.New("checkout step locked")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrSessionCorrupt   = errors.New("checkout session corrupt")
	// ErrFileRejected carries the customer-facing reason an upload failed.
	ErrFileRejected = errors.New("file rejected")
)

type Deps struct {
	Cart      CartStore
	Catalog   CatalogReader
	Sessions  SessionRepo
	Files     FileStore
	Addresses AddressBook
	Orders    OrderWriter
	Logger    *slog.Logger
}

type Service struct {
	cart      CartStore
	catalog   CatalogReader
	sessions  SessionRepo
	files     FileStore
	addresses AddressBook
	orders    OrderWriter
	log       *slog.Logger

	vatBPS        int64
	maxConcurrent int

	locks keylock.Striped
}

func NewService(d Deps, vatBPS int64, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if vatBPS < 0 {
		vatBPS = pricing.DefaultVATBasisPoints
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		cart:          d.Cart,
		catalog:       d.Catalog,
		sessions:      d.Sessions,
		files:         d.Files,
		addresses:     d.Addresses,
		orders:        d.Orders,
		log:           log,
		vatBPS:        vatBPS,
		maxConcurrent: maxConcurrent,
	}
}

// View is what one wizard step renders.
type View struct {
	Step            domain.Step                 `json:"step"`
	Next            domain.Step                 `json:"next"`
	FirstIncomplete domain.Step                 `json:"firstIncomplete"`
	Complete        bool                        `json:"complete"`
	Quote           *domain.Quote               `json:"quote,omitempty"`
	Uploads         map[string][]domain.FileRef `json:"uploads"`
	Shipment        *domain.Shipment            `json:"shipment,omitempty"`
	Payment         *domain.Payment             `json:"payment,omitempty"`
	ShippingOptions []domain.ShippingOption     `json:"shippingOptions,omitempty"`
	PaymentMethods  []string                    `json:"paymentMethods,omitempty"`
}

// View renders step for the session. A step whose predecessors are not all
// complete fails with ErrStepLocked naming the first incomplete one.
func (s *Service) View(ctx context.Context, sessionID string, step domain.Step) (View, error) {
	if strings.TrimSpace(sessionID) == "" || step.Index() < 0 {
		return View{}, ErrInvalidInput
	}

	cart, sess, _, err := s.state(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, step, cart, sess)
}

func (s *Service) view(ctx context.Context, step domain.Step, cart Cart, sess domain.Session) (View, error) {
	cv := cart.view()
	if !sess.Reachable(step, cv) {
		return View{}, locked(sess.FirstIncomplete(cv))
	}

	v := View{
		Step:            step,
		Next:            step.Next(),
		FirstIncomplete: sess.FirstIncomplete(cv),
		Complete:        sess.Complete(step, cv),
		Uploads:         sess.Uploads,
		Shipment:        sess.Shipment,
		Payment:         sess.Payment,
	}
	switch step {
	case domain.StepShipment:
		v.ShippingOptions = domain.ShippingOptions
	case domain.StepPayment:
		v.PaymentMethods = domain.PaymentMethods
	}

	if len(cart.Items) > 0 {
		q, err := s.quote(ctx, cart, sess)
		if err != nil {
			return View{}, err
		}
		v.Quote = &q
	}
	return v, nil
}

// Quote prices the session's cart. Catalog lookups run concurrently, bounded
// by the configured limit.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Quote{}, ErrInvalidInput
	}

	cart, sess, _, err := s.state(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}
	return s.quote(ctx, cart, sess)
}

func (s *Service) quote(ctx context.Context, cart Cart, sess domain.Session) (domain.Quote, error) {
	items := cart.Items
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be greater than zero: %d", ErrInvalidInput, it.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, it.Slug)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.Slug, err)
			}
			if cart.Currency != "" && product.Currency != cart.Currency {
				return fmt.Errorf("%w: %s priced in %s, cart in %s", ErrCurrencyMismatch, it.Slug, product.Currency, cart.Currency)
			}

			lines[idx] = domain.QuoteLine{
				ItemID:    it.ItemID,
				Slug:      it.Slug,
				Name:      product.Name,
				OrderName: it.OrderName,
				Quantity:  int64(it.Quantity),
				UnitPrice: domain.Money{Currency: product.Currency, Amount: product.Amount},
				LineTotal: domain.Money{
					Currency: product.Currency,
					Amount:   pricing.LineTotal(product.Amount, it.Quantity),
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	option := shippingOption(cart, sess)
	opt, _ := domain.LookupShipping(option)

	lineTotals := make([]int64, len(lines))
	for i, line := range lines {
		lineTotals[i] = line.LineTotal.Amount
	}
	totals := pricing.Compute(lineTotals, opt.Amount, s.vatBPS)

	currency := lines[0].LineTotal.Currency
	return domain.Quote{
		Lines:          lines,
		ShippingOption: option,
		Subtotal:       domain.Money{Currency: currency, Amount: totals.Subtotal},
		VAT:            domain.Money{Currency: currency, Amount: totals.VAT},
		Shipping:       domain.Money{Currency: currency, Amount: totals.Shipping},
		Total:          domain.Money{Currency: currency, Amount: totals.Total},
		PriceVersion:   pricing.Version,
	}, nil
}

type FileInput struct {
	ItemID string
	Name   string
	Size   int64
	Body   io.Reader
}

// AttachFile stores a print file for a cart line and records it in the
// checkout session.
func (s *Service) AttachFile(ctx context.Context, sessionID string, in FileInput) (domain.FileRef, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(in.ItemID) == "" || in.Body == nil {
		return domain.FileRef{}, ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	cart, sess, orphans, err := s.state(ctx, sessionID)
	if err != nil {
		return domain.FileRef{}, err
	}
	s.discardOrphans(ctx, sessionID, orphans)
	if !sess.Reachable(domain.StepUpload, cart.view()) {
		return domain.FileRef{}, locked(sess.FirstIncomplete(cart.view()))
	}
	if !cart.has(in.ItemID) {
		return domain.FileRef{}, fmt.Errorf("%w: item %s is not in the cart", ErrNotFound, in.ItemID)
	}

	ref, err := s.files.Store(ctx, sessionID, in.ItemID, in.Name, in.Size, in.Body)
	if err != nil {
		return domain.FileRef{}, err
	}

	sess.Attach(in.ItemID, ref)
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return domain.FileRef{}, err
	}
	return ref, nil
}

type ShipmentInput struct {
	AddressID string
	Address   *domain.Address
	Option    string
}

// SetShipment records the delivery address and shipping option. A saved
// address is referenced by id; otherwise the inline address is validated.
func (s *Service) SetShipment(ctx context.Context, sessionID string, in ShipmentInput) (View, error) {
	if strings.TrimSpace(sessionID) == "" {
		return View{}, ErrInvalidInput
	}
	opt, ok := domain.LookupShipping(in.Option)
	if !ok {
		return View{}, fmt.Errorf("%w: unknown shipping option %q", ErrInvalidInput, in.Option)
	}

	shipment := domain.Shipment{Option: opt.Code}
	switch {
	case in.AddressID != "":
		addr, err := s.addresses.GetAddress(ctx, sessionID, in.AddressID)
		if err != nil {
			return View{}, err
		}
		shipment.AddressID = in.AddressID
		shipment.Address = addr
	case in.Address != nil:
		if err := in.Address.Validate(); err != nil {
			return View{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		shipment.Address = *in.Address
	default:
		return View{}, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	defer s.locks.Lock(sessionID)()

	cart, sess, orphans, err := s.state(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if !sess.Reachable(domain.StepShipment, cart.view()) {
		return View{}, locked(sess.FirstIncomplete(cart.view()))
	}
	s.discardOrphans(ctx, sessionID, orphans)

	sess.Shipment = &shipment
	if sess.Payment != nil && domain.ValidatePayment(sess.Payment.Method, opt.Code) != nil {
		sess.Payment = nil
	}

	// The cart goes first; a failed session write puts its option back.
	previous := cart.ShippingOption
	if err := s.cart.SetShippingOption(ctx, sessionID, opt.Code); err != nil {
		return View{}, err
	}
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		if rerr := s.cart.SetShippingOption(ctx, sessionID, previous); rerr != nil {
			s.log.WarnContext(ctx, "restore cart shipping option", slog.String("session_id", sessionID), slog.Any("err", rerr))
		}
		return View{}, err
	}
	cart.ShippingOption = opt.Code

	return s.view(ctx, domain.StepPayment, cart, sess)
}

func (s *Service) SetPayment(ctx context.Context, sessionID, method string) (View, error) {
	if strings.TrimSpace(sessionID) == "" {
		return View{}, ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	cart, sess, orphans, err := s.state(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	s.discardOrphans(ctx, sessionID, orphans)
	if !sess.Reachable(domain.StepPayment, cart.view()) {
		return View{}, locked(sess.FirstIncomplete(cart.view()))
	}
	if err := domain.ValidatePayment(method, sess.Shipment.Option); err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess.Payment = &domain.Payment{Method: method}
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return View{}, err
	}
	return s.view(ctx, domain.StepSummary, cart, sess)
}

// PlaceOrder turns a completed checkout into an order, then takes the ordered
// lines off the cart and drops the checkout session. Cleanup failures are
// logged; the order stands.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (PlacedOrder, error) {
	if strings.TrimSpace(sessionID) == "" {
		return PlacedOrder{}, ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	cart, sess, orphans, err := s.state(ctx, sessionID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if !sess.Reachable(domain.StepSummary, cart.view()) {
		return PlacedOrder{}, locked(sess.FirstIncomplete(cart.view()))
	}
	s.discardOrphans(ctx, sessionID, orphans)

	q, err := s.quote(ctx, cart, sess)
	if err != nil {
		return PlacedOrder{}, err
	}

	draft := OrderDraft{
		OwnerID:        sessionID,
		Currency:       q.Total.Currency,
		ShippingOption: q.ShippingOption,
		PaymentMethod:  sess.Payment.Method,
		Address:        sess.Shipment.Address,
		ShippingAmount: q.Shipping.Amount,
		VATBasisPoints: s.vatBPS,
		Items:          make([]OrderDraftItem, 0, len(q.Lines)),
	}
	for i, line := range q.Lines {
		draft.Items = append(draft.Items, OrderDraftItem{
			ItemID:        line.ItemID,
			Slug:          line.Slug,
			Name:          line.Name,
			Configuration: cart.Items[i].Configuration,
			UnitAmount:    line.UnitPrice.Amount,
			Quantity:      line.Quantity,
			Files:         sess.Uploads[line.ItemID],
		})
	}

	placed, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		return PlacedOrder{}, err
	}

	ordered := make(map[string]int, len(cart.Items))
	for _, it := range cart.Items {
		ordered[it.ItemID] += it.Quantity
	}
	if err := s.cart.RemoveOrdered(ctx, sessionID, ordered); err != nil {
		s.log.WarnContext(ctx, "remove ordered lines from cart", slog.String("order_id", placed.ID), slog.Any("err", err))
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.WarnContext(ctx, "delete checkout session after order", slog.String("order_id", placed.ID), slog.Any("err", err))
	}
	return placed, nil
}

// Reset abandons the checkout: stored files and progress are dropped, the
// cart stays.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	if err := s.files.Discard(ctx, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

// state loads the cart and the checkout session, dropping uploads of lines
// that left the cart. The item ids whose uploads were dropped are returned.
func (s *Service) state(ctx context.Context, sessionID string) (Cart, domain.Session, []string, error) {
	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return Cart{}, domain.Session{}, nil, err
	}

	sess, err := s.sessions.Load(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		sess = domain.NewSession()
	case errors.Is(err, ErrSessionCorrupt):
		s.log.WarnContext(ctx, "discarding unreadable checkout session", slog.String("session_id", sessionID), slog.Any("err", err))
		sess = domain.NewSession()
	case err != nil:
		return Cart{}, domain.Session{}, nil, err
	case sess.Version != domain.SessionVersion:
		sess = domain.NewSession()
	}
	if sess.Uploads == nil {
		sess.Uploads = map[string][]domain.FileRef{}
	}

	orphans := sess.Prune(cart.view().ItemIDs)
	return cart, sess, orphans, nil
}

// discardOrphans removes stored files of lines that left the cart. Callers
// hold the session lock.
func (s *Service) discardOrphans(ctx context.Context, sessionID string, itemIDs []string) {
	for _, id := range itemIDs {
		if err := s.files.DiscardItem(ctx, sessionID, id); err != nil {
			s.log.WarnContext(ctx, "discard files of removed line", slog.String("session_id", sessionID), slog.String("item_id", id), slog.Any("err", err))
		}
	}
}

func shippingOption(cart Cart, sess domain.Session) string {
	if sess.Shipment != nil && sess.Shipment.Option != "" {
		return sess.Shipment.Option
	}
	return cart.ShippingOption
}

func locked(first domain.Step) error {
	return fmt.Errorf("%w: complete the %s step first", ErrStepLocked, first)
}
