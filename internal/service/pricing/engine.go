package pricing

import (
	"fmt"
	"math"
	"strings"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
)

// Input describes one parcel to price.
type Input struct {
	Kind     domain.ParcelKind
	WeightKg float64
	Sender   domain.Locality
	Receiver domain.Locality
}

// Line is one labeled component of a quote.
type Line struct {
	Label       string
	AmountCents int64
}

// Quote is a priced parcel. Total always equals the sum of the lines.
type Quote struct {
	Currency   string
	TotalCents int64
	Lines      []Line
}

// Engine computes parcel quotes from a rate card. The same input always
// yields the same quote; the engine holds no mutable state.
type Engine struct {
	card RateCard
}

// NewEngine creates a pricing engine over the given rate card.
func NewEngine(card RateCard) *Engine {
	return &Engine{card: card}
}

// Quote prices a parcel. Document parcels are flat-rated and ignore weight;
// non-document parcels pay a base rate for the first included kilograms, a
// per-kilogram rate for every started kilogram above that, and a surcharge
// when a heavy parcel also crosses regions.
func (e *Engine) Quote(in Input) (Quote, error) {
	if err := validateInput(in); err != nil {
		return Quote{}, err
	}

	withinCity := in.Sender.SameRegion(in.Receiver)
	q := Quote{Currency: e.card.Currency}

	if in.Kind == domain.KindDocument {
		if withinCity {
			q.addLine("Document (Within City)", e.card.Document.WithinCityCents)
		} else {
			q.addLine("Document (Outside City)", e.card.Document.OutsideCityCents)
		}
		return q, nil
	}

	nd := e.card.NonDocument
	included := nd.IncludedWeightKg
	if withinCity {
		q.addLine(fmt.Sprintf("Non-Document (First %skg, Within City)", trimKg(included)), nd.BaseWithinCityCents)
	} else {
		q.addLine(fmt.Sprintf("Non-Document (First %skg, Outside City)", trimKg(included)), nd.BaseOutsideCityCents)
	}

	if in.WeightKg > included {
		extraKg := int64(math.Ceil(in.WeightKg - included))
		q.addLine(fmt.Sprintf("Extra Weight (%d kg)", extraKg), extraKg*nd.ExtraPerKgCents)

		if !withinCity {
			q.addLine(fmt.Sprintf("Outside City Surcharge (>%skg)", trimKg(included)), nd.OutsideCitySurchargeCents)
		}
	}

	return q, nil
}

func (q *Quote) addLine(label string, amount int64) {
	q.Lines = append(q.Lines, Line{Label: label, AmountCents: amount})
	q.TotalCents += amount
}

func validateInput(in Input) error {
	if !in.Kind.Valid() {
		return apperr.Invalid
	}
	if in.Sender.Zero() || in.Receiver.Zero() {
		return apperr.Invalid
	}
	if in.WeightKg < 0 {
		return apperr.Invalid
	}
	if in.Kind == domain.KindNonDocument && in.WeightKg <= 0 {
		return apperr.Invalid
	}
	return nil
}

// trimKg renders a weight without a trailing ".0" so labels read "3kg", not "3.0kg".
func trimKg(w float64) string {
	s := fmt.Sprintf("%.1f", w)
	return strings.TrimSuffix(s, ".0")
}
