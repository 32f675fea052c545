// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	History(ctx context.Context) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
	timeout time.Duration
}

// NewHandler returns transfer handler. A non-positive timeout disables the per-transfer deadline.
func NewHandler(ts Service, timeout time.Duration) *Handler {
	return &Handler{
		service: ts,
		timeout: timeout,
	}
}

type request struct {
	FromAccountNumber string `json:"from_account_number" binding:"required"`
	ToAccountNumber   string `json:"to_account_number" binding:"required"`
	Amount            string `json:"amount" binding:"required,amount"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data  *data  `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, response{Error: web.BindErrorMsg(err)})

		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	arg := domain.CreateTransferParams{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		Amount:            req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		res := response{Error: err.Error()}
		if result.Transfer.ID != 0 {
			res.Data = &data{result}
		}

		var sysErr *domain.SystemError

		switch {
		case errors.As(err, &sysErr):
			// Reported as internal whatever business error it joins.
		case errors.Is(err, domain.ErrInvalidAmount):
			gctx.JSON(http.StatusBadRequest, res)
			return
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, res)
			return
		case errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusUnprocessableEntity, res)
			return
		}

		res.Error = errorspkg.ErrInternal.Error()
		gctx.JSON(http.StatusInternalServerError, res)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: &data{result}})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type dataRecord struct {
	Transfer domain.Transfer `json:"transfer"`
}

type responseRecord struct {
	Data dataRecord `json:"data,omitempty"`
}

// Get handles http request to get a transfer record by its id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindErrorMsg(err)})

		return
	}

	record, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseRecord{Data: dataRecord{record}})
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}

type responseTransfers struct {
	Data dataTransfers `json:"data,omitempty"`
}

// History handles http request to list transfer records, the most recent first.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	transfers, err := h.service.History(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if transfers == nil {
		transfers = []domain.Transfer{}
	}

	gctx.JSON(http.StatusOK, responseTransfers{Data: dataTransfers{transfers}})
}
