package http

import (
	"net/http"
	"strconv"

	"algo-backtest/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.GET("/config", h.getBacktestConfig)
	backtestGroup.GET("/indicators", h.getIndicators)
	backtestGroup.POST("/run", h.runBacktest)
	backtestGroup.POST("/run-batch", h.runBacktestBatch)
	backtestGroup.GET("/results/:id", h.getBacktestResults)
	backtestGroup.GET("/history", h.getBacktestHistory)
	backtestGroup.DELETE("/:id", h.deleteBacktest)
}

func (h *HttpAPIHandler) getBacktestConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.BacktestService.ConfigOptions())
}

func (h *HttpAPIHandler) getIndicators(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.BacktestService.Indicators())
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestConfig)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result := h.service.BacktestService.Run(ctx, *req)
	return c.JSON(statusCodeFor(result), result)
}

func (h *HttpAPIHandler) runBacktestBatch(c echo.Context) error {
	ctx := c.Request().Context()

	var reqs []dto.BacktestConfig
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	for _, req := range reqs {
		if err := h.validator.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
	}

	results := h.service.BacktestRunner.RunMany(ctx, reqs)
	return c.JSON(http.StatusOK, results)
}

func (h *HttpAPIHandler) getBacktestResults(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.service.BacktestService.GetResult(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to retrieve backtest results", nil))
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("backtest not found"))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) getBacktestHistory(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be an integer"))
		}
		limit = parsed
	}

	summaries, err := h.service.BacktestService.History(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to retrieve backtest history", nil))
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *HttpAPIHandler) deleteBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	deleted, err := h.service.BacktestService.Delete(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to delete backtest", nil))
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("backtest not found"))
	}
	return c.NoContent(http.StatusNoContent)
}

// statusCodeFor maps a run outcome to its HTTP status. The body always
// carries the full failure-shaped result.
func statusCodeFor(result *dto.BacktestResults) int {
	if result.Status != dto.StatusFailed {
		return http.StatusOK
	}
	switch result.ErrorKind {
	case dto.FailureValidation, dto.FailureNoData:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
