package domain

// StateVersion is the schema version of a persisted cart document.
const StateVersion = 1

// Configuration holds the print options picked for a product.
type Configuration struct {
	Format     string   `json:"format"`
	Paper      string   `json:"paper"`
	Colors     string   `json:"colors"`
	Finishings []string `json:"finishings"`
}

type CartItem struct {
	ItemID            string        `json:"itemId"`
	Slug              string        `json:"slug"`
	Quantity          int           `json:"quantity"`
	Configuration     Configuration `json:"configuration"`
	PriceVersion      string        `json:"priceVersion"`
	ConfigFingerprint string        `json:"configFingerprint"`
	Thumbnail         string        `json:"thumbnail"`
	ShippingOption    string        `json:"shippingOption,omitempty"`
	OrderName         string        `json:"orderName,omitempty"`
}

// State is the cart document of one session. Its mutators never fail:
// invalid input is ignored.
type State struct {
	Version        int        `json:"version"`
	Items          []CartItem `json:"items"`
	Currency       string     `json:"currency"`
	ShippingOption string     `json:"shippingOption,omitempty"`
}

func NewState(currency string) State {
	return State{
		Version:  StateVersion,
		Items:    []CartItem{},
		Currency: currency,
	}
}

// AddItem merges item into the cart. The fingerprint and item id are derived
// from the slug and configuration; an existing line with the same id gets its
// quantity increased, otherwise the item is appended. Non-positive
// quantities are ignored.
func (s *State) AddItem(item CartItem) {
	if item.Quantity <= 0 || item.Slug == "" {
		return
	}

	item.ConfigFingerprint = Fingerprint(item.Slug, item.Configuration)
	item.ItemID = item.Slug + "-" + item.ConfigFingerprint
	if item.ShippingOption == "" {
		item.ShippingOption = s.ShippingOption
	}

	if i := s.indexOf(item.ItemID); i >= 0 {
		s.Items[i].Quantity += item.Quantity
		return
	}
	s.Items = append(s.Items, item)
}

func (s *State) RemoveItem(itemID string) {
	if i := s.indexOf(itemID); i >= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
	}
}

// UpdateItemQuantity sets the quantity of a line; qty <= 0 removes it.
func (s *State) UpdateItemQuantity(itemID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(itemID)
		return
	}
	if i := s.indexOf(itemID); i >= 0 {
		s.Items[i].Quantity = qty
	}
}

func (s *State) Clear() {
	s.Items = []CartItem{}
	s.ShippingOption = ""
}

// SetShippingOption applies option to the cart and every line.
func (s *State) SetShippingOption(option string) {
	s.ShippingOption = option
	for i := range s.Items {
		s.Items[i].ShippingOption = option
	}
}

func (s *State) Item(itemID string) (CartItem, bool) {
	if i := s.indexOf(itemID); i >= 0 {
		return s.Items[i], true
	}
	return CartItem{}, false
}

// TotalQuantity sums the quantities of all lines.
func (s *State) TotalQuantity() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s *State) IsEmpty() bool { return len(s.Items) == 0 }

func (s *State) indexOf(itemID string) int {
	for i, it := range s.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}
