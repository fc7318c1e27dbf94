package domain

import "errors"

// ErrLoanRefused indicates that the underwriting check rejected the request.
var ErrLoanRefused = errors.New("refused loan")

// LoanRequest holds an approved loan waiting for its grant delay to elapse.
type LoanRequest struct {
	Username string `json:"username"`
	Amount   string `json:"amount"`
}
