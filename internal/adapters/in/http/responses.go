package http

import (
	"time"

	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
)

// orderSummaryAPI is the list-view order representation on the wire.
type orderSummaryAPI struct {
	ID                      string    `json:"id"`
	OrderNumber             string    `json:"order_number"`
	CustomerID              string    `json:"customer_id"`
	AssignedWorkerID        *string   `json:"assigned_worker_id,omitempty"`
	Urgency                 string    `json:"urgency"`
	Status                  string    `json:"status"`
	TotalAmount             float64   `json:"total_amount"`
	AmountPaid              float64   `json:"amount_paid"`
	EstimatedCompletionDate time.Time `json:"estimated_completion_date"`
	CreatedAt               time.Time `json:"created_at"`
}

// progressEntryAPI is one ledger row on the wire.
type progressEntryAPI struct {
	ID          string    `json:"id"`
	Stage       string    `json:"stage"`
	CompletedBy *string   `json:"completed_by,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Images      []string  `json:"images,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// orderDetailAPI is the full order representation on the wire.
type orderDetailAPI struct {
	ID                      string             `json:"id"`
	OrderNumber             string             `json:"order_number"`
	CustomerID              string             `json:"customer_id"`
	StyleID                 *string            `json:"style_id,omitempty"`
	FabricSource            string             `json:"fabric_source"`
	FabricInventoryID       *string            `json:"fabric_inventory_id,omitempty"`
	MeasurementProfileID    string             `json:"measurement_profile_id"`
	AssignedWorkerID        *string            `json:"assigned_worker_id,omitempty"`
	AssignedManagerID       *string            `json:"assigned_manager_id,omitempty"`
	BasePrice               float64            `json:"base_price"`
	FabricCost              float64            `json:"fabric_cost"`
	AdditionalCharges       float64            `json:"additional_charges"`
	Discount                float64            `json:"discount"`
	TotalAmount             float64            `json:"total_amount"`
	AmountPaid              float64            `json:"amount_paid"`
	Balance                 float64            `json:"balance"`
	Urgency                 string             `json:"urgency"`
	Status                  string             `json:"status"`
	EstimatedCompletionDate time.Time          `json:"estimated_completion_date"`
	Notes                   string             `json:"notes,omitempty"`
	Progress                []progressEntryAPI `json:"progress"`
	CreatedAt               time.Time          `json:"created_at"`
}

// workerWorkloadAPI is one capacity dashboard row on the wire.
type workerWorkloadAPI struct {
	WorkerID        string  `json:"worker_id"`
	Name            string  `json:"name"`
	CurrentWorkload int     `json:"current_workload"`
	MaxWorkload     int     `json:"max_workload"`
	ActiveOrders    int     `json:"active_orders"`
	Rating          float64 `json:"rating"`
	IsAvailable     bool    `json:"is_available"`
}

func orderSummariesToAPI(summaries []queries.OrderSummaryResponse) []orderSummaryAPI {
	response := make([]orderSummaryAPI, len(summaries))
	for i, summary := range summaries {
		response[i] = orderSummaryAPI{
			ID:                      summary.ID.String(),
			OrderNumber:             summary.OrderNumber,
			CustomerID:              summary.CustomerID.String(),
			AssignedWorkerID:        optionalUUIDString(summary.AssignedWorkerID),
			Urgency:                 summary.Urgency,
			Status:                  summary.Status,
			TotalAmount:             summary.TotalAmount,
			AmountPaid:              summary.AmountPaid,
			EstimatedCompletionDate: summary.EstimatedCompletionDate,
			CreatedAt:               summary.CreatedAt,
		}
	}
	return response
}

func orderDetailToAPI(detail queries.GetOrderByIDQueryResponse) orderDetailAPI {
	progress := make([]progressEntryAPI, len(detail.Progress))
	for i, entry := range detail.Progress {
		progress[i] = progressEntryAPI{
			ID:          entry.ID.String(),
			Stage:       entry.Stage,
			CompletedBy: optionalUUIDString(entry.CompletedBy),
			Notes:       entry.Notes,
			Images:      entry.Images,
			RecordedAt:  entry.RecordedAt,
		}
	}

	return orderDetailAPI{
		ID:                      detail.ID.String(),
		OrderNumber:             detail.OrderNumber,
		CustomerID:              detail.CustomerID.String(),
		StyleID:                 optionalUUIDString(detail.StyleID),
		FabricSource:            detail.FabricSource,
		FabricInventoryID:       optionalUUIDString(detail.FabricInventoryID),
		MeasurementProfileID:    detail.MeasurementProfileID.String(),
		AssignedWorkerID:        optionalUUIDString(detail.AssignedWorkerID),
		AssignedManagerID:       optionalUUIDString(detail.AssignedManagerID),
		BasePrice:               detail.BasePrice,
		FabricCost:              detail.FabricCost,
		AdditionalCharges:       detail.AdditionalCharges,
		Discount:                detail.Discount,
		TotalAmount:             detail.TotalAmount,
		AmountPaid:              detail.AmountPaid,
		Balance:                 detail.Balance,
		Urgency:                 detail.Urgency,
		Status:                  detail.Status,
		EstimatedCompletionDate: detail.EstimatedCompletionDate,
		Notes:                   detail.Notes,
		Progress:                progress,
		CreatedAt:               detail.CreatedAt,
	}
}

func optionalUUIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
