package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyAccountName = errors.New("empty account name")
	ErrEmptyAccountType = errors.New("empty account type")
	ErrEmptyInstitution = errors.New("empty institution")
	ErrNegativeAmount   = errors.New("negative amount")
)

// SavingsAccount is one tracked savings position. Amounts are stored as the
// institution reports them, in the account's currency (EUR by default).
type SavingsAccount struct {
	ID          int64     `json:"id"`
	AccountName string    `json:"accountName"`
	AccountType string    `json:"accountType"`
	Institution string    `json:"institution"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SavingsEntry is one historical balance observation for an account.
type SavingsEntry struct {
	ID          int64     `json:"id"`
	AccountName string    `json:"accountName"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// SavingsUpdate is the caller-supplied payload for creating or updating a
// savings account balance.
type SavingsUpdate struct {
	AccountName string  `json:"accountName"`
	AccountType string  `json:"accountType"`
	Institution string  `json:"institution"`
	Amount      float64 `json:"amount"`
}

func (u SavingsUpdate) Validate() error {
	if strings.TrimSpace(u.AccountName) == "" {
		return ErrEmptyAccountName
	}
	if strings.TrimSpace(u.AccountType) == "" {
		return ErrEmptyAccountType
	}
	if strings.TrimSpace(u.Institution) == "" {
		return ErrEmptyInstitution
	}
	if u.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
