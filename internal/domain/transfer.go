package domain

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the sender balance does not cover the amount.
	ErrInsufficientFunds = errors.New("not enough funds")
	// ErrUnknownRecipient indicates that no account matches the recipient owner name.
	ErrUnknownRecipient = errors.New("unknown recipient")
)

// TransferResult reports both touched accounts after a completed transfer.
// From and To reference the same account when the sender transfers to itself,
// which the bank permits.
type TransferResult struct {
	From Account `json:"from_account"`
	To   Account `json:"to_account"`
}
