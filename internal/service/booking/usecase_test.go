package booking_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/metrics"
	"profast-parcel-service/internal/service/booking"
	"profast-parcel-service/internal/service/pricing"
)

type stubParcels struct {
	createFn func(context.Context, *domain.Parcel) error
	getFn    func(context.Context, int64) (*domain.Parcel, error)
	byCodeFn func(context.Context, string) (*domain.Parcel, error)
	listFn   func(context.Context, string) ([]domain.Parcel, error)
}

func (s *stubParcels) Create(ctx context.Context, p *domain.Parcel) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, p)
}
func (s *stubParcels) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}
func (s *stubParcels) GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error) {
	if s.byCodeFn == nil {
		return nil, nil
	}
	return s.byCodeFn(ctx, code)
}
func (s *stubParcels) ListByCreator(ctx context.Context, createdBy string) ([]domain.Parcel, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, createdBy)
}

type stubLocalities struct {
	table domain.LocalityTable
	err   error
}

func (s *stubLocalities) ListAll(context.Context) (domain.LocalityTable, error) {
	return s.table, s.err
}

var coverage = domain.LocalityTable{
	{Region: "dhaka", District: "dhanmondi"},
	{Region: "dhaka", District: "uttara"},
	{Region: "chittagong", District: "pahartali"},
}

func validRequest() booking.Request {
	return booking.Request{
		Title:            "books",
		Kind:             domain.KindNonDocument,
		WeightKg:         2,
		SenderName:       "Alice",
		SenderContact:    "0171000001",
		SenderLocality:   domain.Locality{Region: "dhaka", District: "dhanmondi"},
		SenderAddress:    "12 Road 2",
		ReceiverName:     "Bob",
		ReceiverContact:  "0171000002",
		ReceiverLocality: domain.Locality{Region: "dhaka", District: "uttara"},
		ReceiverAddress:  "7 Sector 4",
		CreatedBy:        "alice@example.com",
	}
}

func newService(parcels *stubParcels, localities *stubLocalities) *booking.Service {
	engine := pricing.NewEngine(pricing.DefaultRateCard())
	return booking.NewService(parcels, localities, engine, metrics.NewParcelsBookedTotal(), 3*time.Second, logx.Nop())
}

func TestBook_Success(t *testing.T) {
	t.Parallel()

	var saved *domain.Parcel
	parcels := &stubParcels{
		createFn: func(_ context.Context, p *domain.Parcel) error {
			saved = p
			return nil
		},
	}

	svc := newService(parcels, &stubLocalities{table: coverage})

	p, quote, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Same(t, saved, p)

	assert.True(t, strings.HasPrefix(p.TrackingCode, "PFT-"))
	assert.Equal(t, domain.PaymentPending, p.PaymentStatus)
	assert.Equal(t, domain.DeliveryPending, p.DeliveryStatus)
	assert.Equal(t, int64(11000), p.CostCents)
	assert.Equal(t, quote.TotalCents, p.CostCents)
}

func TestBook_UniqueTrackingCodes(t *testing.T) {
	t.Parallel()

	parcels := &stubParcels{}
	svc := newService(parcels, &stubLocalities{table: coverage})

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		p, _, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)
		_, dup := seen[p.TrackingCode]
		require.False(t, dup)
		seen[p.TrackingCode] = struct{}{}
	}
}

func TestBook_UncoveredLocality(t *testing.T) {
	t.Parallel()

	svc := newService(&stubParcels{}, &stubLocalities{table: coverage})

	r := validRequest()
	r.ReceiverLocality = domain.Locality{Region: "sylhet", District: "zindabazar"}

	_, _, err := svc.Book(context.Background(), r)
	require.ErrorIs(t, err, apperr.MissingLocality)
}

func TestBook_EmptyCoverageTable(t *testing.T) {
	t.Parallel()

	svc := newService(&stubParcels{}, &stubLocalities{})

	_, _, err := svc.Book(context.Background(), validRequest())
	require.ErrorIs(t, err, apperr.MissingLocality)
}

func TestBook_InvalidRequest(t *testing.T) {
	t.Parallel()

	svc := newService(&stubParcels{}, &stubLocalities{table: coverage})

	cases := []struct {
		name   string
		mutate func(*booking.Request)
	}{
		{name: "empty title", mutate: func(r *booking.Request) { r.Title = "  " }},
		{name: "bad sender contact", mutate: func(r *booking.Request) { r.SenderContact = "123" }},
		{name: "bad receiver contact", mutate: func(r *booking.Request) { r.ReceiverContact = "abcdefghij" }},
		{name: "missing receiver name", mutate: func(r *booking.Request) { r.ReceiverName = "" }},
		{name: "missing address", mutate: func(r *booking.Request) { r.SenderAddress = "" }},
		{name: "missing creator", mutate: func(r *booking.Request) { r.CreatedBy = "" }},
		{name: "non-document without weight", mutate: func(r *booking.Request) { r.WeightKg = 0 }},
		{name: "unknown kind", mutate: func(r *booking.Request) { r.Kind = "crate" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := validRequest()
			tc.mutate(&r)
			_, _, err := svc.Book(context.Background(), r)
			require.ErrorIs(t, err, apperr.Invalid)
		})
	}
}

func TestBook_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	parcels := &stubParcels{createFn: func(context.Context, *domain.Parcel) error { return boom }}

	svc := newService(parcels, &stubLocalities{table: coverage})

	_, _, err := svc.Book(context.Background(), validRequest())
	require.ErrorIs(t, err, boom)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := newService(&stubParcels{}, &stubLocalities{table: coverage})

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, apperr.NotFound)

	_, err = svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestGetByTrackingCode(t *testing.T) {
	t.Parallel()

	want := &domain.Parcel{ID: 1, TrackingCode: "PFT-x"}
	parcels := &stubParcels{
		byCodeFn: func(_ context.Context, code string) (*domain.Parcel, error) {
			require.Equal(t, "PFT-x", code)
			return want, nil
		},
	}

	svc := newService(parcels, &stubLocalities{table: coverage})

	got, err := svc.GetByTrackingCode(context.Background(), " PFT-x ")
	require.NoError(t, err)
	require.Same(t, want, got)

	_, err = svc.GetByTrackingCode(context.Background(), "  ")
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestRegions(t *testing.T) {
	t.Parallel()

	svc := newService(&stubParcels{}, &stubLocalities{table: coverage})

	table, err := svc.Regions(context.Background())
	require.NoError(t, err)
	require.Equal(t, coverage, table)

	empty := newService(&stubParcels{}, &stubLocalities{})
	_, err = empty.Regions(context.Background())
	require.ErrorIs(t, err, apperr.MissingLocality)
}
