package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// SessionVersion is the schema version of a persisted checkout session.
const SessionVersion = 1

type FileRef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Path        string    `json:"path"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Shipment struct {
	AddressID string  `json:"addressId,omitempty"`
	Address   Address `json:"address"`
	Option    string  `json:"option"`
}

type Payment struct {
	Method string `json:"method"`
}

// Session is the checkout progress of one browser session, stored next to
// its cart.
type Session struct {
	Version  int                  `json:"version"`
	Uploads  map[string][]FileRef `json:"uploads"`
	Shipment *Shipment            `json:"shipment,omitempty"`
	Payment  *Payment             `json:"payment,omitempty"`
}

func NewSession() Session {
	return Session{Version: SessionVersion, Uploads: map[string][]FileRef{}}
}

func (s *Session) Attach(itemID string, f FileRef) {
	if s.Uploads == nil {
		s.Uploads = map[string][]FileRef{}
	}
	s.Uploads[itemID] = append(s.Uploads[itemID], f)
}

// Prune drops uploads of lines that left the cart and returns their item
// ids, sorted.
func (s *Session) Prune(itemIDs []string) []string {
	keep := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		keep[id] = struct{}{}
	}
	var dropped []string
	for id := range s.Uploads {
		if _, ok := keep[id]; !ok {
			delete(s.Uploads, id)
			dropped = append(dropped, id)
		}
	}
	slices.Sort(dropped)
	return dropped
}

// CartView is what step gating needs to know about the cart.
type CartView struct {
	ItemIDs        []string
	ShippingOption string
}

// Complete reports whether step's requirements are met.
func (s *Session) Complete(step Step, cart CartView) bool {
	switch step {
	case StepCart:
		return len(cart.ItemIDs) > 0
	case StepUpload:
		for _, id := range cart.ItemIDs {
			if len(s.Uploads[id]) == 0 {
				return false
			}
		}
		return len(cart.ItemIDs) > 0
	case StepShipment:
		return s.Shipment != nil && s.Shipment.Option != "" && s.Shipment.Address.Street != ""
	case StepPayment:
		return s.Payment != nil && s.Payment.Method != ""
	default:
		return false
	}
}

// FirstIncomplete returns the earliest step not yet complete.
func (s *Session) FirstIncomplete(cart CartView) Step {
	for _, st := range Steps {
		if !s.Complete(st, cart) {
			return st
		}
	}
	return StepSummary
}

// Reachable reports whether every step before step is complete.
func (s *Session) Reachable(step Step, cart CartView) bool {
	return step.Index() >= 0 && step.Index() <= s.FirstIncomplete(cart).Index()
}

// Validate reports the first missing required field.
func (a Address) Validate() error {
	switch {
	case strings.TrimSpace(a.FullName) == "":
		return errors.New("full name is required")
	case strings.TrimSpace(a.Street) == "":
		return errors.New("street is required")
	case strings.TrimSpace(a.City) == "":
		return errors.New("city is required")
	case strings.TrimSpace(a.PostalCode) == "":
		return errors.New("postal code is required")
	case strings.TrimSpace(a.Country) == "":
		return errors.New("country is required")
	case len(strings.TrimSpace(a.Country)) != 2:
		return errors.New("country must be a two-letter code")
	}
	return nil
}
