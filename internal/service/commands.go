package service

type CreateSubscriptionCommand struct {
	CardNo      string
	CVC         string
	ExpMonth    int
	ExpYear     int
	Currency    string
	Description string
}

type AuthorizeSubscriptionCommand struct {
	SubscriptionID int64
	Amount         int64
	Currency       string
	OrderNo        string
	Description    string
	InstantCapture bool
}

type CreatePaymentCommand struct {
	CardNo         string
	CVC            string
	ExpMonth       int
	ExpYear        int
	Amount         int64
	Currency       string
	OrderNo        string
	Description    string
	InstantCapture bool
}

type CaptureCommand struct {
	TransactionID int64
	Amount        int64
}

type CreditCommand struct {
	TransactionID int64
	Amount        int64
}

// ChargeSubscriptionCommand is the message the scheduler publishes for every
// subscription due in a billing period.
type ChargeSubscriptionCommand struct {
	SubscriptionID int64  `json:"subscription_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderNo        string `json:"order_no"`
	CorrelationID  string `json:"correlation_id"`
}
