// Package http exposes the application over a REST API. Handlers translate
// requests into commands and queries, and translate the core's error
// taxonomy into HTTP status codes. The caller's identity arrives in the
// X-User-Id header, set by the authenticating gateway in front of this
// service.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

const identityHeader = "X-User-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerUserHandler          commands.RegisterUserCommandHandler
	changeUserRoleHandler        commands.ChangeUserRoleCommandHandler
	updateUserStatusHandler      commands.UpdateUserStatusCommandHandler
	createOrderHandler           commands.CreateOrderCommandHandler
	cancelOrderHandler           commands.CancelOrderCommandHandler
	assignWorkerHandler          commands.AssignWorkerCommandHandler
	updateOrderProgressHandler   commands.UpdateOrderProgressCommandHandler
	rateWorkerHandler            commands.RateWorkerCommandHandler
	setWorkerAvailabilityHandler commands.SetWorkerAvailabilityCommandHandler

	// Query handlers
	getOrderByIDHandler      queries.GetOrderByIDQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getWorkerWorkloadHandler queries.GetWorkerWorkloadQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	registerUserHandler commands.RegisterUserCommandHandler,
	changeUserRoleHandler commands.ChangeUserRoleCommandHandler,
	updateUserStatusHandler commands.UpdateUserStatusCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignWorkerHandler commands.AssignWorkerCommandHandler,
	updateOrderProgressHandler commands.UpdateOrderProgressCommandHandler,
	rateWorkerHandler commands.RateWorkerCommandHandler,
	setWorkerAvailabilityHandler commands.SetWorkerAvailabilityCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getWorkerWorkloadHandler queries.GetWorkerWorkloadQueryHandler,
) *Server {
	return &Server{
		registerUserHandler:          registerUserHandler,
		changeUserRoleHandler:        changeUserRoleHandler,
		updateUserStatusHandler:      updateUserStatusHandler,
		createOrderHandler:           createOrderHandler,
		cancelOrderHandler:           cancelOrderHandler,
		assignWorkerHandler:          assignWorkerHandler,
		updateOrderProgressHandler:   updateOrderProgressHandler,
		rateWorkerHandler:            rateWorkerHandler,
		setWorkerAvailabilityHandler: setWorkerAvailabilityHandler,
		getOrderByIDHandler:          getOrderByIDHandler,
		getCustomerOrdersHandler:     getCustomerOrdersHandler,
		getAssignedOrdersHandler:     getAssignedOrdersHandler,
		getAllOrdersHandler:          getAllOrdersHandler,
		getWorkerWorkloadHandler:     getWorkerWorkloadHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/users", s.RegisterUser)
	api.PUT("/users/:id/role", s.ChangeUserRole)
	api.PUT("/users/:id/status", s.UpdateUserStatus)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetAllOrders)
	api.GET("/orders/my", s.GetCustomerOrders)
	api.GET("/orders/assigned", s.GetAssignedOrders)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/assign", s.AssignWorker)
	api.POST("/orders/:id/progress", s.UpdateOrderProgress)
	api.POST("/orders/:id/rating", s.RateWorker)

	api.PUT("/workers/availability", s.SetWorkerAvailability)
	api.GET("/workers/workload", s.GetWorkerWorkload)
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req struct {
		ExternalID string `json:"external_id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterUserCommand(req.ExternalID, req.Name, req.Email)
	if err != nil {
		return errorResponse(ctx, err)
	}

	userID, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{"user_id": userID})
}

// ChangeUserRole handles PUT /api/v1/users/:id/role.
func (s *Server) ChangeUserRole(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	var req struct {
		Role string `json:"role"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := user.RoleFromString(req.Role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewChangeUserRoleCommand(actorID(ctx), userID, role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.changeUserRoleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateUserStatus handles PUT /api/v1/users/:id/status.
func (s *Server) UpdateUserStatus(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := user.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateUserStatusCommand(actorID(ctx), userID, status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateUserStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		StyleID              *string `json:"style_id"`
		FabricSource         string  `json:"fabric_source"`
		FabricInventoryID    *string `json:"fabric_inventory_id"`
		MeasurementProfileID string  `json:"measurement_profile_id"`
		Urgency              string  `json:"urgency"`
		Notes                string  `json:"notes"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	styleID, err := optionalUUIDParam(req.StyleID)
	if err != nil {
		return badRequest(ctx, "Invalid style id")
	}
	fabricInventoryID, err := optionalUUIDParam(req.FabricInventoryID)
	if err != nil {
		return badRequest(ctx, "Invalid fabric inventory id")
	}
	measurementProfileID, err := kernel.UUIDFromString(req.MeasurementProfileID)
	if err != nil {
		return badRequest(ctx, "Invalid measurement profile id")
	}

	fabricSource, err := order.FabricSourceFromString(req.FabricSource)
	if err != nil {
		return errorResponse(ctx, err)
	}
	urgency, err := order.UrgencyFromString(req.Urgency)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		actorID(ctx),
		kernel.NewUUID(),
		styleID,
		fabricSource,
		fabricInventoryID,
		measurementProfileID,
		urgency,
		req.Notes,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
	})
}

// GetAllOrders handles GET /api/v1/orders with an optional status filter.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	status := order.StatusUnknown
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return errorResponse(ctx, err)
		}
		status = parsed
	}

	query, err := queries.NewGetAllOrdersQuery(actorID(ctx), status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesToAPI(orders))
}

// GetCustomerOrders handles GET /api/v1/orders/my.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(actorID(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesToAPI(orders))
}

// GetAssignedOrders handles GET /api/v1/orders/assigned.
func (s *Server) GetAssignedOrders(ctx echo.Context) error {
	query, err := queries.NewGetAssignedOrdersQuery(actorID(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getAssignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesToAPI(orders))
}

// GetOrderByID handles GET /api/v1/orders/:id.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderByIDQuery(actorID(ctx), orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	detail, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailToAPI(detail))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(actorID(ctx), orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignWorker handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignWorker(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		WorkerID string `json:"worker_id"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewAssignWorkerCommand(actorID(ctx), orderID, workerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.assignWorkerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderProgress handles POST /api/v1/orders/:id/progress.
func (s *Server) UpdateOrderProgress(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		Stage  string   `json:"stage"`
		Notes  string   `json:"notes"`
		Images []string `json:"images"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := order.StatusFromString(req.Stage)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderProgressCommand(actorID(ctx), orderID, stage, req.Notes, req.Images)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateOrderProgressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateWorker handles POST /api/v1/orders/:id/rating.
func (s *Server) RateWorker(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		Score      int    `json:"score"`
		Accuracy   int    `json:"accuracy"`
		Timeliness int    `json:"timeliness"`
		Quality    int    `json:"quality"`
		Comment    string `json:"comment"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateWorkerCommand(
		actorID(ctx), orderID,
		req.Score, req.Accuracy, req.Timeliness, req.Quality,
		req.Comment,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.rateWorkerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SetWorkerAvailability handles PUT /api/v1/workers/availability.
func (s *Server) SetWorkerAvailability(ctx echo.Context) error {
	var req struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetWorkerAvailabilityCommand(actorID(ctx), req.IsAvailable)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.setWorkerAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWorkerWorkload handles GET /api/v1/workers/workload.
func (s *Server) GetWorkerWorkload(ctx echo.Context) error {
	query, err := queries.NewGetWorkerWorkloadQuery(actorID(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	workloads, err := s.getWorkerWorkloadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]workerWorkloadAPI, len(workloads))
	for i, row := range workloads {
		response[i] = workerWorkloadAPI{
			WorkerID:        row.WorkerID.String(),
			Name:            row.Name,
			CurrentWorkload: row.CurrentWorkload,
			MaxWorkload:     row.MaxWorkload,
			ActiveOrders:    row.ActiveOrders,
			Rating:          row.Rating,
			IsAvailable:     row.IsAvailable,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func actorID(ctx echo.Context) string {
	return ctx.Request().Header.Get(identityHeader)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func optionalUUIDParam(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil //nolint:nilnil //nil represents an absent reference
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, echo.Map{
		"code":    http.StatusBadRequest,
		"message": message,
	})
}

// errorResponse maps the core error taxonomy onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, echo.Map{
		"code":    status,
		"message": err.Error(),
	})
}
