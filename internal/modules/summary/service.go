// README: Reviewer-facing settlement summary generated through Gemini.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
)

// generateFunc produces text for a prompt. Swapped out in tests.
type generateFunc func(ctx context.Context, apiKey, prompt string) (string, error)

// Service turns a finished settlement into a short plain-language paragraph
// a reviewer can paste into the expense file.
type Service struct {
	apiKey   string
	generate generateFunc
}

// NewService returns a Service. An empty apiKey disables generation:
// Summarize then returns ErrDisabled without calling out.
func NewService(apiKey string) *Service {
	return &Service{apiKey: apiKey, generate: callGemini}
}

// Enabled reports whether a key is configured.
func (s *Service) Enabled() bool {
	return strings.TrimSpace(s.apiKey) != ""
}

// Summarize asks the model to describe the settlement. The prompt carries
// only figures already present in the result, so the numbers in the reply
// can be checked against it line by line.
func (s *Service) Summarize(ctx context.Context, res *settlement.Result) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	return s.generate(ctx, s.apiKey, buildPrompt(res))
}

// buildPrompt renders the settlement into a deterministic prompt. Same
// result, same prompt.
func buildPrompt(res *settlement.Result) string {
	var b strings.Builder
	b.WriteString("Redacta en español, en un solo párrafo y sin inventar cifras, ")
	b.WriteString("un resumen de esta liquidación de dietas y desplazamiento:\n\n")

	fmt.Fprintf(&b, "Normativa aplicada: %s\n", regulationLabel(res.Regulation))
	for _, seg := range res.Segments {
		fmt.Fprintf(&b, "Tramo en %s: del %s al %s, %.1f dietas de manutención (%s EUR), %d noches (máximo alojamiento %s EUR)\n",
			seg.Country,
			seg.Start.Format("02/01/2006 15:04"),
			seg.End.Format("02/01/2006 15:04"),
			seg.MealUnits, seg.MealAmount, seg.Nights, seg.LodgingCap)
	}
	fmt.Fprintf(&b, "Manutención total: %s EUR\n", res.MealAmount)
	fmt.Fprintf(&b, "Alojamiento abonado: %s EUR (justificado %s, máximo %s)\n",
		res.LodgingAmount, res.LodgingClaimed, res.LodgingCap)
	if res.LodgingExceedsCap {
		b.WriteString("El gasto de alojamiento justificado supera el máximo reembolsable.\n")
	}
	if res.LastNightAmbiguous {
		b.WriteString("La última pernocta queda pendiente de justificación por hora de regreso.\n")
	}
	fmt.Fprintf(&b, "Kilometraje: %s EUR\n", res.MileageAmount)
	if !res.OtherExpenses.IsZero() {
		fmt.Fprintf(&b, "Otros gastos: %s EUR\n", res.OtherExpenses)
	}
	if !res.TaxWithheld.IsZero() {
		fmt.Fprintf(&b, "Retención IRPF sobre el exceso exento: %s EUR\n", res.TaxWithheld)
	}
	if res.EventualResidence {
		b.WriteString("Aplicada reducción del 20% por residencia eventual.\n")
	}
	fmt.Fprintf(&b, "Total de la liquidación: %s EUR\n", res.Total)
	return b.String()
}

func regulationLabel(r regulation.Regulation) string {
	switch r {
	case regulation.NationalStatute:
		return "R.D. 462/2002"
	default:
		return "Decreto 42/2025"
	}
}
