package dto

import "github.com/jhoicas/autoventas-api/internal/domain/entity"

// NewUserResponse convierte la entidad en salida HTTP (sin hash ni token de restablecimiento).
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	switch {
	case u.CreatedByRef != nil:
		out.CreatedBy = &UserRefResponse{ID: u.CreatedByRef.ID, Name: u.CreatedByRef.Name, Email: u.CreatedByRef.Email}
	case u.CreatedBy != nil:
		out.CreatedBy = &UserRefResponse{ID: *u.CreatedBy}
	}
	return out
}

// NewUserResponses convierte una lista de entidades.
func NewUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// NewSaleResponse convierte la venta. El cliente lleva teléfono; el vendedor solo nombre y email.
func NewSaleResponse(s *entity.VehicleSale) *SaleResponse {
	if s == nil {
		return nil
	}
	out := &SaleResponse{
		ID: s.ID,
		VehicleDetails: VehicleDetailsResponse{
			Make:  s.Vehicle.Make,
			Model: s.Vehicle.Model,
			Year:  s.Vehicle.Year,
			VIN:   s.Vehicle.VIN,
			Price: s.Vehicle.Price,
		},
		Customer: &UserRefResponse{ID: s.CustomerID},
		PaymentDetails: PaymentDetailsResponse{
			AmountPaid:    s.Payment.AmountPaid,
			PaymentStatus: string(s.Payment.PaymentStatus),
			Currency:      s.Payment.Currency,
		},
		Status:            string(s.Status),
		Seller:            &UserRefResponse{ID: s.SellerID},
		EstimatedDelivery: s.EstimatedDelivery,
		SaleDate:          s.SaleDate,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.Payment.AmountDue.Valid {
		due := s.Payment.AmountDue.Decimal
		out.PaymentDetails.AmountDue = &due
	}
	if s.Customer != nil {
		out.Customer = &UserRefResponse{ID: s.Customer.ID, Name: s.Customer.Name, Email: s.Customer.Email, Phone: s.Customer.Phone}
	}
	if s.Seller != nil {
		out.Seller = &UserRefResponse{ID: s.Seller.ID, Name: s.Seller.Name, Email: s.Seller.Email}
	}
	return out
}

// NewSaleResponses convierte una lista de ventas.
func NewSaleResponses(sales []*entity.VehicleSale) []*SaleResponse {
	out := make([]*SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, NewSaleResponse(s))
	}
	return out
}
