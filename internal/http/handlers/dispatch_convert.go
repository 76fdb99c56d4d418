package handlers

import "profast-parcel-service/internal/domain"

func assignmentResultToResponse(res domain.AssignmentResult) assignmentResultDTO {
	return assignmentResultDTO{
		ParcelID:     res.ParcelID,
		RiderID:      res.RiderID,
		TrackingCode: res.TrackingCode,
		Status:       string(res.Status),
	}
}

func deliveryResultToResponse(res domain.DeliveryResult) deliveryResultDTO {
	return deliveryResultDTO{
		ParcelID:     res.ParcelID,
		RiderID:      res.RiderID,
		TrackingCode: res.TrackingCode,
		Status:       string(res.Status),
		EarningCents: res.EarningCents,
	}
}
