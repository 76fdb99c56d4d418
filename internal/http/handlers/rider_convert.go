package handlers

import "profast-parcel-service/internal/domain"

func (req applyRiderRequest) toModel() *domain.Rider {
	return &domain.Rider{
		Name:      req.Name,
		Email:     req.Email,
		Contact:   req.Contact,
		Locality:  domain.Locality{Region: req.Region, District: req.District},
		Warehouse: req.Warehouse,
	}
}

func (req updateRiderRequest) toModel() domain.PartialRiderUpdate {
	u := domain.PartialRiderUpdate{
		ID:        req.ID,
		Name:      req.Name,
		Contact:   req.Contact,
		Warehouse: req.Warehouse,
	}
	if req.Status != nil {
		status := domain.RiderStatus(*req.Status)
		u.Status = &status
	}
	return u
}

func riderToResponse(r domain.Rider) riderDTO {
	return riderDTO{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Contact:   r.Contact,
		Region:    r.Locality.Region,
		District:  r.Locality.District,
		Warehouse: r.Warehouse,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func ridersToResponse(list []domain.Rider) []riderDTO {
	out := make([]riderDTO, 0, len(list))
	for _, r := range list {
		out = append(out, riderToResponse(r))
	}
	return out
}
