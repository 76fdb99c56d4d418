package handlers

import (
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/service/booking"
	"profast-parcel-service/internal/service/pricing"
)

func (req bookParcelRequest) toModel() booking.Request {
	return booking.Request{
		Title:               req.Title,
		Kind:                domain.ParcelKind(req.Kind),
		WeightKg:            req.WeightKg,
		SenderName:          req.SenderName,
		SenderContact:       req.SenderContact,
		SenderLocality:      domain.Locality{Region: req.SenderRegion, District: req.SenderDistrict},
		SenderAddress:       req.SenderAddress,
		SenderInstruction:   req.SenderInstruction,
		ReceiverName:        req.ReceiverName,
		ReceiverContact:     req.ReceiverContact,
		ReceiverLocality:    domain.Locality{Region: req.ReceiverRegion, District: req.ReceiverDistrict},
		ReceiverAddress:     req.ReceiverAddress,
		ReceiverInstruction: req.ReceiverInstruction,
		CreatedBy:           req.CreatedBy,
	}
}

func (req quoteRequest) toInput() pricing.Input {
	return pricing.Input{
		Kind:     domain.ParcelKind(req.Kind),
		WeightKg: req.WeightKg,
		Sender:   domain.Locality{Region: req.SenderRegion, District: req.SenderDistrict},
		Receiver: domain.Locality{Region: req.ReceiverRegion, District: req.ReceiverDistrict},
	}
}

func parcelToResponse(p domain.Parcel) parcelDTO {
	return parcelDTO{
		ID:               p.ID,
		TrackingCode:     p.TrackingCode,
		Title:            p.Title,
		Kind:             string(p.Kind),
		WeightKg:         p.WeightKg,
		SenderName:       p.SenderName,
		SenderRegion:     p.SenderLocality.Region,
		SenderDistrict:   p.SenderLocality.District,
		ReceiverName:     p.ReceiverName,
		ReceiverRegion:   p.ReceiverLocality.Region,
		ReceiverDistrict: p.ReceiverLocality.District,
		ReceiverAddress:  p.ReceiverAddress,
		CostCents:        p.CostCents,
		PaymentStatus:    string(p.PaymentStatus),
		DeliveryStatus:   string(p.DeliveryStatus),
		AssignedRiderID:  p.AssignedRiderID,
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func parcelsToResponse(list []domain.Parcel) []parcelDTO {
	out := make([]parcelDTO, 0, len(list))
	for _, p := range list {
		out = append(out, parcelToResponse(p))
	}
	return out
}

func quoteToResponse(q pricing.Quote) quoteDTO {
	lines := make([]quoteLineDTO, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, quoteLineDTO{Label: l.Label, AmountCents: l.AmountCents})
	}
	return quoteDTO{
		Currency:   q.Currency,
		TotalCents: q.TotalCents,
		Lines:      lines,
	}
}

func localitiesToResponse(table domain.LocalityTable) []localityDTO {
	out := make([]localityDTO, 0, len(table))
	for _, l := range table {
		out = append(out, localityDTO{Region: l.Region, District: l.District})
	}
	return out
}
