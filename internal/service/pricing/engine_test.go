package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/service/pricing"
)

var (
	dhanmondi = domain.Locality{Region: "dhaka", District: "dhanmondi"}
	uttara    = domain.Locality{Region: "dhaka", District: "uttara"}
	pahartali = domain.Locality{Region: "chittagong", District: "pahartali"}
)

func newEngine() *pricing.Engine {
	return pricing.NewEngine(pricing.DefaultRateCard())
}

func TestQuote_DocumentFlatRates(t *testing.T) {
	t.Parallel()

	e := newEngine()

	within, err := e.Quote(pricing.Input{Kind: domain.KindDocument, Sender: dhanmondi, Receiver: uttara})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), within.TotalCents)
	require.Len(t, within.Lines, 1)
	assert.Equal(t, "Document (Within City)", within.Lines[0].Label)

	outside, err := e.Quote(pricing.Input{Kind: domain.KindDocument, Sender: dhanmondi, Receiver: pahartali})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), outside.TotalCents)
	require.Len(t, outside.Lines, 1)
	assert.Equal(t, "Document (Outside City)", outside.Lines[0].Label)
}

func TestQuote_DocumentIgnoresWeight(t *testing.T) {
	t.Parallel()

	e := newEngine()

	light, err := e.Quote(pricing.Input{Kind: domain.KindDocument, WeightKg: 0, Sender: dhanmondi, Receiver: uttara})
	require.NoError(t, err)

	heavy, err := e.Quote(pricing.Input{Kind: domain.KindDocument, WeightKg: 12, Sender: dhanmondi, Receiver: uttara})
	require.NoError(t, err)

	assert.Equal(t, light.TotalCents, heavy.TotalCents)
}

func TestQuote_NonDocumentWithinIncludedWeight(t *testing.T) {
	t.Parallel()

	e := newEngine()

	q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: 2, Sender: dhanmondi, Receiver: uttara})
	require.NoError(t, err)

	assert.Equal(t, int64(11000), q.TotalCents)
	require.Len(t, q.Lines, 1)
	assert.Equal(t, "Non-Document (First 3kg, Within City)", q.Lines[0].Label)
}

func TestQuote_NonDocumentHeavyCrossRegion(t *testing.T) {
	t.Parallel()

	e := newEngine()

	// 5kg cross-region: 150 base + ceil(2)*40 extra + 40 surcharge = 270
	q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: 5, Sender: dhanmondi, Receiver: pahartali})
	require.NoError(t, err)

	assert.Equal(t, int64(27000), q.TotalCents)
	require.Len(t, q.Lines, 3)
	assert.Equal(t, "Non-Document (First 3kg, Outside City)", q.Lines[0].Label)
	assert.Equal(t, pricing.Line{Label: "Extra Weight (2 kg)", AmountCents: 8000}, q.Lines[1])
	assert.Equal(t, pricing.Line{Label: "Outside City Surcharge (>3kg)", AmountCents: 4000}, q.Lines[2])
}

func TestQuote_ExtraWeightRoundsUpPerStartedKg(t *testing.T) {
	t.Parallel()

	e := newEngine()

	cases := []struct {
		weight float64
		total  int64
	}{
		{weight: 3, total: 11000},   // boundary: no extra
		{weight: 3.1, total: 15000}, // 0.1kg over starts a full extra kg
		{weight: 4, total: 15000},
		{weight: 4.5, total: 19000},
	}
	for _, tc := range cases {
		q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: tc.weight, Sender: dhanmondi, Receiver: uttara})
		require.NoError(t, err)
		assert.Equalf(t, tc.total, q.TotalCents, "weight %v", tc.weight)
	}
}

func TestQuote_NoSurchargeForHeavyWithinCity(t *testing.T) {
	t.Parallel()

	e := newEngine()

	q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: 5, Sender: dhanmondi, Receiver: uttara})
	require.NoError(t, err)

	// 110 base + 2*40 extra, no surcharge within the city
	assert.Equal(t, int64(19000), q.TotalCents)
	require.Len(t, q.Lines, 2)
}

func TestQuote_NoSurchargeForLightCrossRegion(t *testing.T) {
	t.Parallel()

	e := newEngine()

	q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: 2, Sender: dhanmondi, Receiver: pahartali})
	require.NoError(t, err)

	assert.Equal(t, int64(15000), q.TotalCents)
	require.Len(t, q.Lines, 1)
}

func TestQuote_TotalEqualsSumOfLines(t *testing.T) {
	t.Parallel()

	e := newEngine()

	q, err := e.Quote(pricing.Input{Kind: domain.KindNonDocument, WeightKg: 7.2, Sender: uttara, Receiver: pahartali})
	require.NoError(t, err)

	var sum int64
	for _, l := range q.Lines {
		sum += l.AmountCents
	}
	assert.Equal(t, sum, q.TotalCents)
}

func TestQuote_Deterministic(t *testing.T) {
	t.Parallel()

	e := newEngine()
	in := pricing.Input{Kind: domain.KindNonDocument, WeightKg: 5, Sender: dhanmondi, Receiver: pahartali}

	first, err := e.Quote(in)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := e.Quote(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuote_InvalidInput(t *testing.T) {
	t.Parallel()

	e := newEngine()

	cases := []struct {
		name string
		in   pricing.Input
	}{
		{name: "unknown kind", in: pricing.Input{Kind: "box", WeightKg: 1, Sender: dhanmondi, Receiver: uttara}},
		{name: "non-document without weight", in: pricing.Input{Kind: domain.KindNonDocument, Sender: dhanmondi, Receiver: uttara}},
		{name: "negative weight", in: pricing.Input{Kind: domain.KindDocument, WeightKg: -1, Sender: dhanmondi, Receiver: uttara}},
		{name: "missing sender", in: pricing.Input{Kind: domain.KindDocument, Receiver: uttara}},
		{name: "missing receiver", in: pricing.Input{Kind: domain.KindNonDocument, WeightKg: 1, Sender: dhanmondi}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := e.Quote(tc.in)
			require.ErrorIs(t, err, apperr.Invalid)
		})
	}
}
