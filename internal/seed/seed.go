// Package seed holds the predefined demo accounts the ledger starts with.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-bankist/bankist/internal/domain"
)

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return t
}

func movement(amount string, recordedAt string) domain.Movement {
	return domain.Movement{
		Amount: decimal.RequireFromString(amount),
		Time:   mustTime(recordedAt),
	}
}

// Accounts returns fresh copies of the seed data set. Usernames are derived
// by the ledger at init, not stored here.
func Accounts() []domain.Account {
	return []domain.Account{
		{
			Owner:        "Jonas Schmedtmann",
			Pin:          1111,
			InterestRate: decimal.RequireFromString("1.2"),
			Currency:     "EUR",
			Locale:       "pt-PT",
			Movements: []domain.Movement{
				movement("200", "2019-11-18T21:31:17.178Z"),
				movement("455.23", "2019-12-23T07:42:02.383Z"),
				movement("-306.5", "2020-01-28T09:15:04.904Z"),
				movement("25000", "2020-04-01T10:17:24.185Z"),
				movement("-642.21", "2020-05-08T14:11:59.604Z"),
				movement("-133.9", "2024-05-10T17:01:17.194Z"),
				movement("79.97", "2024-05-11T23:36:17.929Z"),
				movement("1300", "2024-05-12T10:51:36.790Z"),
			},
		},
		{
			Owner:        "Jessica Davis",
			Pin:          2222,
			InterestRate: decimal.RequireFromString("1.5"),
			Currency:     "GBP",
			Locale:       "en-GB",
			Movements: []domain.Movement{
				movement("5000", "2019-11-01T13:15:33.035Z"),
				movement("3400", "2019-11-30T09:48:16.867Z"),
				movement("-150", "2019-12-25T06:04:23.907Z"),
				movement("-790", "2020-01-25T14:18:46.235Z"),
				movement("-3210", "2020-02-05T16:33:06.386Z"),
				movement("-1000", "2020-04-10T14:43:26.374Z"),
				movement("8500", "2020-06-25T18:49:59.371Z"),
				movement("-30", "2020-07-26T12:01:20.894Z"),
			},
		},
	}
}
