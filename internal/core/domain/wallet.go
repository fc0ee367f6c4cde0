package domain

import "time"

// Wallet is a named money-holding bucket. It deliberately has no balance
// field; balances are projected from the cash-flow ledger on demand.
type Wallet struct {
	WalletID  string    `json:"walletID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
