package routes

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"xrplbalance/api/types"
)

const (
	MsgInvalidAddress  = "Please provide a valid account address"
	MsgUpstreamFailure = "Failed to fetch data from XRPL API"
)

var validate = validator.New()

type LedgerService interface {
	GetGenesisBalance(address string) (json.RawMessage, error)
}

type BalanceHandler struct {
	Ledger LedgerService
	Logger *zap.SugaredLogger
}

func NewBalanceHandler(ledger LedgerService, logger *zap.SugaredLogger) *BalanceHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BalanceHandler{Ledger: ledger, Logger: logger}
}

func (h *BalanceHandler) GetBalance(ctx *fiber.Ctx) error {
	// Only account_address is read; other query keys never fail the request.
	request := types.BalanceRequest{
		AccountAddress: ctx.Query("account_address"),
	}

	if err := validate.Struct(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Error: MsgInvalidAddress,
		})
	}

	balance, err := h.Ledger.GetGenesisBalance(request.AccountAddress)
	if err != nil {
		h.Logger.Warnw("genesis balance lookup failed",
			"account_address", request.AccountAddress,
			"error", err,
		)
		return ctx.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Error: MsgUpstreamFailure,
		})
	}

	return ctx.JSON(types.BalanceResponse{
		AccountAddress: request.AccountAddress,
		GenesisBalance: balance,
	})
}
