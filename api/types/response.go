package types

import "encoding/json"

// BalanceResponse always carries genesis_balance; a nil value encodes as null.
type BalanceResponse struct {
	AccountAddress string          `json:"account_address"`
	GenesisBalance json.RawMessage `json:"genesis_balance"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
