package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	for _, st := range Steps {
		got, err := ParseStep(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseStep("review")
	assert.Error(t, err)

	assert.Equal(t, StepUpload, StepCart.Next())
	assert.Equal(t, StepSummary, StepSummary.Next())
}

func TestStepGating(t *testing.T) {
	cart := CartView{ItemIDs: []string{"flyers-a", "posters-b"}}
	s := NewSession()

	t.Run("empty cart -> only cart reachable", func(t *testing.T) {
		empty := CartView{}
		assert.Equal(t, StepCart, s.FirstIncomplete(empty))
		assert.True(t, s.Reachable(StepCart, empty))
		assert.False(t, s.Reachable(StepUpload, empty))
	})

	t.Run("items without files -> upload is the frontier", func(t *testing.T) {
		assert.Equal(t, StepUpload, s.FirstIncomplete(cart))
		assert.True(t, s.Reachable(StepUpload, cart))
		assert.False(t, s.Reachable(StepShipment, cart))
	})

	t.Run("one item missing a file -> still upload", func(t *testing.T) {
		s.Attach("flyers-a", FileRef{ID: "1"})
		assert.Equal(t, StepUpload, s.FirstIncomplete(cart))
	})

	t.Run("all files -> shipment", func(t *testing.T) {
		s.Attach("posters-b", FileRef{ID: "2"})
		assert.Equal(t, StepShipment, s.FirstIncomplete(cart))
	})

	t.Run("shipment + payment -> summary", func(t *testing.T) {
		s.Shipment = &Shipment{Option: "standard", Address: Address{Street: "Main 1"}}
		assert.Equal(t, StepPayment, s.FirstIncomplete(cart))

		s.Payment = &Payment{Method: PaymentCard}
		assert.Equal(t, StepSummary, s.FirstIncomplete(cart))
		assert.True(t, s.Reachable(StepSummary, cart))
	})

	t.Run("new cart line reopens upload", func(t *testing.T) {
		more := CartView{ItemIDs: append([]string{"stickers-c"}, cart.ItemIDs...)}
		assert.Equal(t, StepUpload, s.FirstIncomplete(more))
		assert.False(t, s.Reachable(StepPayment, more))
	})
}

func TestPrune(t *testing.T) {
	s := NewSession()
	s.Attach("a", FileRef{ID: "1"})
	s.Attach("b", FileRef{ID: "2"})
	s.Attach("c", FileRef{ID: "3"})

	dropped := s.Prune([]string{"b"})

	assert.Equal(t, []string{"a", "c"}, dropped)
	assert.NotContains(t, s.Uploads, "a")
	assert.Contains(t, s.Uploads, "b")
	assert.Empty(t, s.Prune([]string{"b"}))
}

func TestValidatePayment(t *testing.T) {
	assert.NoError(t, ValidatePayment(PaymentCard, "pickup"))
	assert.NoError(t, ValidatePayment(PaymentCashOnDelivery, "standard"))
	assert.Error(t, ValidatePayment(PaymentCashOnDelivery, "pickup"))
	assert.Error(t, ValidatePayment("bitcoin", "standard"))
}

func TestAddressValidate(t *testing.T) {
	ok := Address{FullName: "Jan Kowalski", Street: "Main 1", City: "Gdansk", PostalCode: "80-001", Country: "PL"}
	assert.NoError(t, ok.Validate())

	missing := ok
	missing.City = "  "
	assert.EqualError(t, missing.Validate(), "city is required")
}
