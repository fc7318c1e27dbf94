package domain

// Movement row types as rendered on the statement.
const (
	MovementTypeDeposit    = "deposit"
	MovementTypeWithdrawal = "withdrawal"
)

// StatementRow is one rendered movement: its position in insertion order,
// deposit/withdrawal type, a human date (relative for recent movements) and
// the amount localized to the account currency.
type StatementRow struct {
	Seq   int    `json:"seq"`
	Type  string `json:"type"`
	Date  string `json:"date"`
	Value string `json:"value"`
}

// StatementSummary holds the localized footer figures. Out is rendered with
// the minus sign stripped; the underlying sum stays negative.
type StatementSummary struct {
	Balance  string `json:"balance"`
	In       string `json:"in"`
	Out      string `json:"out"`
	Interest string `json:"interest"`
}

// Statement is the full display surface for one account.
type Statement struct {
	Welcome string           `json:"welcome"`
	Rows    []StatementRow   `json:"rows"`
	Summary StatementSummary `json:"summary"`
}
