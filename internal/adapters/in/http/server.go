package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"packhouse/internal/core/application/usecases/commands"
	"packhouse/internal/core/application/usecases/queries"
	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

type (
	createClassificationHandler interface {
		Handle(ctx context.Context, cmd commands.CreateClassificationCommand) error
	}
	addPalletHandler interface {
		Handle(ctx context.Context, cmd commands.AddPalletCommand) (ledger.ValidationResult, error)
	}
	addWasteHandler interface {
		Handle(ctx context.Context, cmd commands.AddWasteCommand) (ledger.ValidationResult, error)
	}
	addReturnHandler interface {
		Handle(ctx context.Context, cmd commands.AddReturnCommand) (ledger.ValidationResult, error)
	}
	adjustCategoryWeightsHandler interface {
		Handle(ctx context.Context, cmd commands.AdjustCategoryWeightsCommand) (ledger.AdjustmentResult, error)
	}
	setPricesHandler interface {
		Handle(ctx context.Context, cmd commands.SetPricesCommand) error
	}
	finalizeClassificationHandler interface {
		Handle(ctx context.Context, cmd commands.FinalizeClassificationCommand) (ledger.FinalizationResult, error)
	}
	classificationSummaryHandler interface {
		Handle(ctx context.Context, q queries.GetClassificationSummaryQuery) (queries.ClassificationSummary, error)
	}
	orderProgressHandler interface {
		Handle(ctx context.Context, q queries.GetOrderProgressQuery) (queries.OrderProgress, error)
	}
	openClassificationsHandler interface {
		Handle(
			ctx context.Context,
			q queries.GetOpenClassificationsQuery,
		) ([]queries.GetOpenClassificationsQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateClassification   createClassificationHandler
	AddPallet              addPalletHandler
	AddWaste               addWasteHandler
	AddReturn              addReturnHandler
	AdjustCategoryWeights  adjustCategoryWeightsHandler
	SetPrices              setPricesHandler
	FinalizeClassification finalizeClassificationHandler
	ClassificationSummary  classificationSummaryHandler
	OrderProgress          orderProgressHandler
	OpenClassifications    openClassificationsHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{handlers: handlers, logger: logger}
}

// CreateClassification handles POST /api/v1/classifications.
func (s *Server) CreateClassification(ctx echo.Context) error {
	var body NewClassificationRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	prices, err := body.Prices.toDomain()
	if err != nil {
		return errorJSON(ctx, err)
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		if id, err = kernel.UUIDFromBytes(body.ID[:]); err != nil {
			return errorJSON(ctx, err)
		}
	}

	orderID, err := kernel.UUIDFromBytes(body.OrderID[:])
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCreateClassificationCommand(id, orderID, body.LotCode, body.ExpectedWeight, prices)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.handlers.CreateClassification.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.failure(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// ListClassifications handles GET /api/v1/classifications?status=open.
func (s *Server) ListClassifications(ctx echo.Context) error {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return badRequest(ctx, err.Error())
	}
	if status != nil && !strings.EqualFold(*status, "open") {
		return badRequest(ctx, "only status=open is supported")
	}

	rows, err := s.handlers.OpenClassifications.Handle(ctx.Request().Context(), queries.NewGetOpenClassificationsQuery())
	if err != nil {
		return s.failure(ctx, err)
	}

	response := make([]OpenClassification, 0, len(rows))
	for _, row := range rows {
		response = append(response, OpenClassification{
			ID:             row.ID.Bytes(),
			OrderID:        row.OrderID.Bytes(),
			LotCode:        row.LotCode,
			ExpectedWeight: row.ExpectedWeight,
			CreatedAt:      row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetClassification handles GET /api/v1/classifications/:id.
func (s *Server) GetClassification(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetClassificationSummaryQuery(id)
	if err != nil {
		return errorJSON(ctx, err)
	}

	summary, err := s.handlers.ClassificationSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromSummary(summary))
}

// AddPallet handles POST /api/v1/classifications/:id/pallets.
func (s *Server) AddPallet(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body NewPalletRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	category, err := classification.ParseCategory(body.Category)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAddPalletCommand(id, category, body.Weight)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.handlers.AddPallet.Handle(ctx.Request().Context(), cmd)
	return s.decision(ctx, result, err)
}

// AddWaste handles POST /api/v1/classifications/:id/waste.
func (s *Server) AddWaste(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body NewWasteRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddWasteCommand(id, body.Weight, body.Description)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.handlers.AddWaste.Handle(ctx.Request().Context(), cmd)
	return s.decision(ctx, result, err)
}

// AddReturn handles POST /api/v1/classifications/:id/returns.
func (s *Server) AddReturn(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body NewReturnRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddReturnCommand(id, body.Weight, body.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.handlers.AddReturn.Handle(ctx.Request().Context(), cmd)
	return s.decision(ctx, result, err)
}

// AdjustCategoryWeights handles POST /api/v1/classifications/:id/adjustments.
func (s *Server) AdjustCategoryWeights(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body AdjustmentRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deltas, err := parseDeltas(body.Deltas)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAdjustCategoryWeightsCommand(id, deltas)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.handlers.AdjustCategoryWeights.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, ledger.ErrOperationRejected) {
		return s.failure(ctx, err)
	}

	if !result.Accepted() {
		return ctx.JSON(http.StatusUnprocessableEntity, fromAdjustmentResult(result))
	}
	return ctx.JSON(http.StatusCreated, fromAdjustmentResult(result))
}

// SetPrices handles PUT /api/v1/classifications/:id/prices.
func (s *Server) SetPrices(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body PricesBody
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	prices, err := body.toDomain()
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewSetPricesCommand(id, prices)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.handlers.SetPrices.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromPrices(prices))
}

// FinalizeClassification handles POST /api/v1/classifications/:id/finalize.
func (s *Server) FinalizeClassification(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewFinalizeClassificationCommand(id)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.handlers.FinalizeClassification.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, ledger.ErrFinalizationBlocked):
		return ctx.JSON(http.StatusConflict, fromFinalization(result))
	case err != nil:
		return s.failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromFinalization(result))
}

// GetOrderProgress handles GET /api/v1/orders/:orderId/progress.
func (s *Server) GetOrderProgress(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	progress, err := s.handlers.OrderProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromOrderProgress(progress))
}

// decision renders a ledger verdict: 201 when accepted, 422 when rejected.
func (s *Server) decision(ctx echo.Context, result ledger.ValidationResult, err error) error {
	if err != nil && !errors.Is(err, ledger.ErrOperationRejected) {
		return s.failure(ctx, err)
	}

	if !result.Accepted() {
		return ctx.JSON(http.StatusUnprocessableEntity, fromValidationResult(result))
	}
	return ctx.JSON(http.StatusCreated, fromValidationResult(result))
}

func (s *Server) failure(ctx echo.Context, err error) error {
	if statusFor(err) == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err))
	}
	return errorJSON(ctx, err)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(raw[:])
}
