package inventory

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func toRefResponse(r entity.WarehouseRef) dto.WarehouseRefResponse {
	return dto.WarehouseRefResponse{ID: r.ID, Name: r.Name}
}

func toHeaderResponse(h entity.DocumentHeader) dto.DocumentHeaderResponse {
	return dto.DocumentHeaderResponse{
		ID:            h.ID,
		Number:        h.Number,
		Status:        string(h.Status),
		Notes:         h.Notes,
		Date:          h.Date,
		CreatedBy:     h.CreatedBy,
		CreatedByName: h.CreatedByName,
		ProcessedBy:   h.ProcessedBy,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

func toItemResponses(items []entity.OperationItem) []dto.OperationItemResponse {
	out := make([]dto.OperationItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.OperationItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	return out
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	return &dto.ReceiptResponse{
		DocumentHeaderResponse: toHeaderResponse(r.DocumentHeader),
		Supplier:               r.Supplier,
		Warehouse:              toRefResponse(r.Warehouse),
		Items:                  toItemResponses(r.Items),
	}
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	return &dto.DeliveryResponse{
		DocumentHeaderResponse: toHeaderResponse(d.DocumentHeader),
		Customer:               d.Customer,
		Warehouse:              toRefResponse(d.Warehouse),
		ShippingAddress:        d.ShippingAddress,
		Items:                  toItemResponses(d.Items),
	}
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		DocumentHeaderResponse: toHeaderResponse(t.DocumentHeader),
		ProductID:              t.ProductID,
		ProductName:            t.ProductName,
		Quantity:               t.Quantity,
		FromLocation:           toRefResponse(t.From),
		ToLocation:             toRefResponse(t.To),
	}
}

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AdjustmentResponse{
		ID:            a.ID,
		Number:        a.Number,
		ProductID:     a.ProductID,
		ProductName:   a.ProductName,
		Warehouse:     toRefResponse(a.Warehouse),
		OldQuantity:   a.OldQuantity,
		NewQuantity:   a.NewQuantity,
		Difference:    a.Difference(),
		Reason:        a.Reason,
		Status:        string(a.Status),
		Date:          a.Date,
		CreatedBy:     a.CreatedBy,
		CreatedByName: a.CreatedByName,
		ApprovedBy:    a.ApprovedBy,
		CreatedAt:     a.CreatedAt,
	}
}
