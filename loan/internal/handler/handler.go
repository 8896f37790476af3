package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	mw "github.com/Astemirdum/library-loan-service/pkg/middleware"
	"github.com/Astemirdum/library-loan-service/pkg/validate"
	_ "github.com/Astemirdum/library-loan-service/swagger"
)

type Handler struct {
	loanSvc LoanService
	log     *zap.Logger
}

func New(loanSvc LoanService, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc: loanSvc,
		log:     log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)

	api.POST("/loans", h.CreateLoan)
	api.GET("/loans", h.ListLoans)
	api.GET("/loans/active", h.ListActive)
	api.GET("/loans/overdue", h.ListOverdue)
	api.POST("/loans/sweep", h.Sweep)
	api.GET("/loans/users/:userId", h.ListByUser)
	api.GET("/loans/books/:bookId", h.ListByBook)
	api.GET("/loans/:loanId", h.GetLoan)
	api.PATCH("/loans/:loanId", h.ModifyLoan)
	api.POST("/loans/:loanId/return", h.ReturnLoan)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps service errors onto status codes. Conflicts are checked before
// not found and unavailable because a conflict may wrap either as its cause.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrRemoteUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func loanID(c echo.Context) (string, error) {
	id := c.Param("loanId")
	if _, err := uuid.Parse(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid loanId")
	}
	return id, nil
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.loanSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	id, err := loanID(c)
	if err != nil {
		return err
	}
	resp, err := h.loanSvc.ReturnLoan(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ModifyLoan(c echo.Context) error {
	id, err := loanID(c)
	if err != nil {
		return err
	}
	var req model.ModifyLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.loanSvc.ModifyLoan(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetLoan(c echo.Context) error {
	id, err := loanID(c)
	if err != nil {
		return err
	}
	resp, err := h.loanSvc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListLoans(c echo.Context) error {
	var status model.Status
	if s := c.QueryParam("status"); s != "" {
		st, ok := model.ParseStatus(s)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = st
	}
	list, err := h.loanSvc.ListLoans(c.Request().Context(), status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListActive(c echo.Context) error {
	list, err := h.loanSvc.ListActive(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListOverdue(c echo.Context) error {
	list, err := h.loanSvc.ListOverdue(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListByUser(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	list, err := h.loanSvc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListByBook(c echo.Context) error {
	bookID, err := paramID(c, "bookId")
	if err != nil {
		return err
	}
	list, err := h.loanSvc.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) Sweep(c echo.Context) error {
	report, err := h.loanSvc.SweepOverdue(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
