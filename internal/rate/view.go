package rate

import (
	"time"

	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
)

// View is the rate payload served over REST and pushed to websocket clients.
type View struct {
	FromCurrency string            `json:"fromCurrency" example:"BTC"`
	ToCurrency   string            `json:"toCurrency" example:"RUB"`
	Rate         decimal.Decimal   `json:"rate" swaggertype:"string" example:"6012345.67"`
	Timestamp    time.Time         `json:"timestamp"`
	Source       domain.RateSource `json:"source" swaggertype:"string" example:"derived"`
}

func NewView(r domain.ResolvedRate) View {
	return View{
		FromCurrency: r.Pair.From,
		ToCurrency:   r.Pair.To,
		Rate:         r.Rate,
		Timestamp:    r.ResolvedAt,
		Source:       r.Source,
	}
}
