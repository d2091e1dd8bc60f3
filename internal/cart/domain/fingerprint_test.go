package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintGolden(t *testing.T) {
	cases := []struct {
		name string
		slug string
		cfg  Configuration
		want string
	}{
		{
			name: "positive hash",
			slug: "flyers",
			cfg: Configuration{
				Format: "A5", Paper: "gloss-130", Colors: "4/4",
				Finishings: []string{"lamination-gloss", "lamination-matte"},
			},
			want: "mj1qlc",
		},
		{
			name: "negative hash uses magnitude",
			slug: "business-cards",
			cfg:  Configuration{Format: "85x55", Paper: "matte-350", Colors: "4/4"},
			want: "wefxxo",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Fingerprint(tc.slug, tc.cfg))
			assert.Equal(t, tc.slug+"-"+tc.want, ItemID(tc.slug, tc.cfg))
		})
	}
}

func TestFingerprintFinishingOrder(t *testing.T) {
	a := Configuration{Format: "A4", Paper: "p", Colors: "4/4", Finishings: []string{"b", "a", "c"}}
	b := Configuration{Format: "A4", Paper: "p", Colors: "4/4", Finishings: []string{"c", "b", "a"}}

	assert.Equal(t, Fingerprint("flyers", a), Fingerprint("flyers", b))
	assert.Equal(t, []string{"b", "a", "c"}, a.Finishings, "input must not be reordered")
}

func TestFingerprintDistinguishes(t *testing.T) {
	base := Configuration{Format: "A4", Paper: "p", Colors: "4/4"}
	other := base
	other.Colors = "4/0"

	assert.NotEqual(t, Fingerprint("flyers", base), Fingerprint("flyers", other))
	assert.NotEqual(t, Fingerprint("flyers", base), Fingerprint("posters", base))
}

func TestFingerprintDeterministic(t *testing.T) {
	cfg := Configuration{Format: "A4", Paper: "żółty", Colors: "4/4", Finishings: []string{"x"}}
	first := Fingerprint("ulotki", cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Fingerprint("ulotki", cfg))
	}
}
