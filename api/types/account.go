package types

type BalanceRequest struct {
	AccountAddress string `validate:"required"`
}
