package v1

import (
	"time"

	"github.com/Behyna/epay/pkg/epay"
)

type CardResponse struct {
	Kind       string `json:"kind,omitempty"`
	LastDigits string `json:"last_digits,omitempty"`
	ExpMonth   int    `json:"exp_month,omitempty"`
	ExpYear    int    `json:"exp_year,omitempty"`
	Expired    bool   `json:"expired"`
}

type SubscriptionResponse struct {
	ID           int64                 `json:"id"`
	Description  string                `json:"description,omitempty"`
	CreatedAt    string                `json:"created_at,omitempty"`
	Card         CardResponse          `json:"card"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Total         int                    `json:"total"`
}

type TransactionResponse struct {
	ID             int64        `json:"id"`
	OrderNo        string       `json:"order_no,omitempty"`
	Description    string       `json:"description,omitempty"`
	Status         string       `json:"status,omitempty"`
	Currency       string       `json:"currency,omitempty"`
	Amount         int64        `json:"amount"`
	CapturedAmount int64        `json:"captured_amount"`
	CreditedAmount int64        `json:"credited_amount"`
	Captured       bool         `json:"captured"`
	Credited       bool         `json:"credited"`
	Deleted        bool         `json:"deleted"`
	CreatedAt      string       `json:"created_at,omitempty"`
	Card           CardResponse `json:"card"`
}

func newCardResponse(card epay.Card, now time.Time) CardResponse {
	return CardResponse{
		Kind:       string(card.Kind),
		LastDigits: card.LastDigits(),
		ExpMonth:   card.ExpMonth,
		ExpYear:    card.ExpYear,
		Expired:    card.ExpMonth != 0 && card.Expired(now),
	}
}

func newSubscriptionResponse(sub *epay.Subscription, now time.Time) SubscriptionResponse {
	res := SubscriptionResponse{
		ID:          sub.ID(),
		Description: sub.Description(),
		CreatedAt:   formatTime(sub.CreatedAt()),
		Card:        newCardResponse(sub.Card(), now),
	}

	for _, tx := range sub.Transactions() {
		res.Transactions = append(res.Transactions, newTransactionResponse(tx, now))
	}

	return res
}

func newTransactionResponse(tx *epay.Transaction, now time.Time) TransactionResponse {
	return TransactionResponse{
		ID:             tx.ID(),
		OrderNo:        tx.OrderNo(),
		Description:    tx.Description(),
		Status:         tx.Status(),
		Currency:       tx.Currency(),
		Amount:         tx.Amount(),
		CapturedAmount: tx.CapturedAmount(),
		CreditedAmount: tx.CreditedAmount(),
		Captured:       tx.Captured(),
		Credited:       tx.Credited(),
		Deleted:        tx.Deleted(),
		CreatedAt:      formatTime(tx.CreatedAt()),
		Card:           newCardResponse(tx.Card(), now),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
