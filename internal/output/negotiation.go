package output

import (
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// Negotiation frames scenario 2 as an opening offer without the 20 days per
// year and a ceiling with them
type Negotiation struct {
	WithTwentyDays    decimal.Decimal `json:"with_20_days" yaml:"with_20_days"`
	WithoutTwentyDays decimal.Decimal `json:"without_20_days" yaml:"without_20_days"`
	Margin            decimal.Decimal `json:"margin" yaml:"margin"`
}

// NewNegotiation derives the negotiation figures from a result
func NewNegotiation(result domain.CalculationResult) Negotiation {
	return Negotiation{
		WithTwentyDays:    result.Scenario2Total,
		WithoutTwentyDays: result.Scenario2TotalWithout20Days,
		Margin:            result.NegotiationMargin(),
	}
}

// ScenarioNotes describe when each scenario applies
var ScenarioNotes = []string{
	"Escenario 1 (Finiquito de ley): renuncia voluntaria o separación de mutuo acuerdo; cubre solo prestaciones devengadas.",
	"Escenario 2 (Negociación): despido negociado; ofrecer primero el monto sin 20 días y reservar los 20 días por año como margen.",
	"Escenario 3 (Riesgo demanda): proyección si el caso escala a juicio y se pierde; incluye salarios caídos e intereses, sin honorarios de abogados.",
}

// LegalNotice is appended to full reports
const LegalNotice = "Estimación orientativa basada en la Ley Federal del Trabajo. No constituye asesoría legal; valide las cifras finales con su área legal."
