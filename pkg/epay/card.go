package epay

import (
	"strconv"
	"strings"
	"time"
)

type CardKind string

const (
	CardDankort                CardKind = "dankort"
	CardVisaDankort            CardKind = "visa_dankort"
	CardVisaElectronForeign    CardKind = "visa_electron_foreign"
	CardMastercard             CardKind = "mastercard"
	CardMastercardForeign      CardKind = "mastercard_foreign"
	CardVisaElectron           CardKind = "visa_electron"
	CardJCB                    CardKind = "jcb"
	CardDiners                 CardKind = "diners"
	CardMaestro                CardKind = "maestro"
	CardAmericanExpress        CardKind = "american_express"
	CardUnknown                CardKind = "unknown"
	CardEDK                    CardKind = "edk"
	CardDinersForeign          CardKind = "diners_foreign"
	CardAmericanExpressForeign CardKind = "american_express_foreign"
	CardMaestroForeign         CardKind = "maestro_foreign"
	CardForbrugsforeningen     CardKind = "forbrugsforeningen"
	CardEwire                  CardKind = "ewire"
	CardVisa                   CardKind = "visa"
	CardIkano                  CardKind = "ikano"
	CardNordeaSolo             CardKind = "nordea_solo"
	CardDanskeBank             CardKind = "danske_bank"
	CardBGBank                 CardKind = "bg_bank"
	CardLICMastercard          CardKind = "lic_mastercard"
	CardLICMastercardForeign   CardKind = "lic_mastercard_foreign"
	CardPaypal                 CardKind = "paypal"
	CardMobilpenge             CardKind = "mobilpenge"
)

// Id 20 is not assigned by the gateway.
var cardKinds = map[int]CardKind{
	1:  CardDankort,
	2:  CardVisaDankort,
	3:  CardVisaElectronForeign,
	4:  CardMastercard,
	5:  CardMastercardForeign,
	6:  CardVisaElectron,
	7:  CardJCB,
	8:  CardDiners,
	9:  CardMaestro,
	10: CardAmericanExpress,
	11: CardUnknown,
	12: CardEDK,
	13: CardDinersForeign,
	14: CardAmericanExpressForeign,
	15: CardMaestroForeign,
	16: CardForbrugsforeningen,
	17: CardEwire,
	18: CardVisa,
	19: CardIkano,
	21: CardNordeaSolo,
	22: CardDanskeBank,
	23: CardBGBank,
	24: CardLICMastercard,
	25: CardLICMastercardForeign,
	26: CardPaypal,
	27: CardMobilpenge,
}

func CardKindByID(id int) (CardKind, bool) {
	kind, ok := cardKinds[id]
	return kind, ok
}

// cardKindFrom accepts either a numeric card type id or a symbolic name as the
// gateway sends it ("VISA", "Mastercard").
func cardKindFrom(raw string) CardKind {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CardUnknown
	}

	if id, err := strconv.Atoi(raw); err == nil {
		if kind, ok := CardKindByID(id); ok {
			return kind
		}
		return CardUnknown
	}

	return CardKind(strings.ToLower(raw))
}

// Card is derived from gateway data and has no identity of its own.
// ExpYear keeps the gateway's two-digit form, so 2025 is stored as 25.
type Card struct {
	Number   string
	ExpYear  int
	ExpMonth int
	Kind     CardKind
}

// Expiry returns the last instant of the expiry month.
func (c Card) Expiry() time.Time {
	year := c.ExpYear
	if year < 100 {
		year += 2000
	}

	return time.Date(year, time.Month(c.ExpMonth)+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

func (c Card) Expired(now time.Time) bool {
	if c.ExpMonth < 1 || c.ExpMonth > 12 {
		return true
	}

	return now.After(c.Expiry())
}

// LastDigits returns the trailing digits of the (usually obfuscated) card number.
func (c Card) LastDigits() string {
	digits := make([]byte, 0, 4)
	for i := len(c.Number) - 1; i >= 0 && len(digits) < 4; i-- {
		if c.Number[i] >= '0' && c.Number[i] <= '9' {
			digits = append(digits, c.Number[i])
		} else {
			break
		}
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return string(digits)
}
