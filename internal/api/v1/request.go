package v1

type CreateSubscriptionRequest struct {
	CardNo      string `json:"card_no" validate:"required,cardno"`
	CVC         string `json:"cvc" validate:"omitempty,numeric,min=3,max=4"`
	ExpMonth    int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear     int    `json:"exp_year" validate:"required,min=0,max=9999"`
	Currency    string `json:"currency" validate:"omitempty,currency"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type AuthorizeSubscriptionRequest struct {
	Amount         int64  `json:"amount" validate:"required,min=1"`
	Currency       string `json:"currency" validate:"omitempty,currency"`
	OrderNo        string `json:"order_no" validate:"omitempty,max=20"`
	Description    string `json:"description" validate:"omitempty,max=255"`
	InstantCapture bool   `json:"instant_capture"`
}

type CreatePaymentRequest struct {
	CardNo         string `json:"card_no" validate:"required,cardno"`
	CVC            string `json:"cvc" validate:"omitempty,numeric,min=3,max=4"`
	ExpMonth       int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear        int    `json:"exp_year" validate:"required,min=0,max=9999"`
	Amount         int64  `json:"amount" validate:"required,min=1"`
	Currency       string `json:"currency" validate:"omitempty,currency"`
	OrderNo        string `json:"order_no" validate:"omitempty,max=20"`
	Description    string `json:"description" validate:"omitempty,max=255"`
	InstantCapture bool   `json:"instant_capture"`
}

// CaptureRequest with a zero amount captures the full authorized amount.
type CaptureRequest struct {
	Amount int64 `json:"amount" validate:"min=0"`
}

type CreditRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}
