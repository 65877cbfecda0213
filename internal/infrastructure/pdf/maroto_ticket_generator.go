// Package pdf genera el bon de cântar (ticket de pesaje) imprimible.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Bon de cântar + código │ fecha       │
//	│  ──────────────────────────────────────────  │
//	│  Comanda / Vehículo / Conductor               │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Tara | Brut | Net (kg)                │
//	│  ──────────────────────────────────────────  │
//	│  Datos de dirección + estado de envío + QR    │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWarn    = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.TicketPDFGenerator = (*MarotoTicketGenerator)(nil)

// MarotoTicketGenerator implementa ports.TicketPDFGenerator usando Maroto v2.
type MarotoTicketGenerator struct {
	plantName string
}

// NewMarotoTicketGenerator construye el generador; plantName aparece en la cabecera.
func NewMarotoTicketGenerator(plantName string) *MarotoTicketGenerator {
	return &MarotoTicketGenerator{plantName: plantName}
}

// GenerateTicketPDF genera el PDF del pesaje y devuelve sus bytes.
func (g *MarotoTicketGenerator) GenerateTicketPDF(_ context.Context, t *entity.WeighTicket) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("pdf: ticket nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bon de cântar "+t.SessionCode, true).
		WithAuthor(nonEmpty(g.plantName, t.PlantID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t, nonEmpty(g.plantName, t.PlantID)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(weightsHeaderRow())
	m.AddRows(weightsRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range footerRows(t) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(t *entity.WeighTicket, plant string) core.Row {
	kind := "RECEPȚIE"
	if t.Direction == entity.DirectionOutbound {
		kind = "LIVRARE"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(plant, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("BON DE CÂNTAR · "+kind, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(t.SessionCode, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(t.WeighedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func partiesRow(t *entity.WeighTicket) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 7, Top: top, Color: colorGray})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Top: top, Style: fontstyle.Bold})
	}
	return row.New(14).Add(
		col.New(4).Add(label("Comandă", 1), value(nonEmpty(t.OrderCode, "-"), 5)),
		col.New(4).Add(label("Vehicul", 1), value(nonEmpty(t.VehiclePlate, "-"), 5)),
		col.New(4).Add(label("Șofer", 1), value(nonEmpty(t.DriverName, "-"), 5)),
	)
}

func weightsHeaderRow() core.Row {
	h := func(label string) core.Col {
		return col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorWhite, Top: 2,
		}))
	}
	return row.New(8).Add(h("Tara (kg)"), h("Brut (kg)"), h("Net (kg)")).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func weightsRow(t *entity.WeighTicket) core.Row {
	v := func(d decimal.Decimal, bold bool) core.Col {
		p := props.Text{Size: 11, Align: align.Center, Top: 2}
		if bold {
			p.Style = fontstyle.Bold
		}
		return col.New(4).Add(text.New(formatKg(d), p))
	}
	return row.New(10).Add(v(t.Tara, false), v(t.MasaBrut, false), v(t.MasaNet, true))
}

func footerRows(t *entity.WeighTicket) []core.Row {
	var lines []string
	if t.Direction == entity.DirectionInbound {
		if t.HumidityPct != nil {
			lines = append(lines, "Umiditate: "+t.HumidityPct.String()+" %")
		}
		if t.ProvisionalWaybillNo != "" {
			lines = append(lines, "Aviz provizoriu: "+t.ProvisionalWaybillNo)
		}
		if t.EntryWaybillNo != "" {
			lines = append(lines, "NIR: "+t.EntryWaybillNo)
		}
		if t.InvoiceNo != "" {
			lines = append(lines, "Factură: "+t.InvoiceNo)
		}
	} else if t.Temperature != nil {
		lines = append(lines, "Temperatură: "+t.Temperature.String()+" °C")
	}
	if t.Observations != "" {
		lines = append(lines, "Observații: "+t.Observations)
	}

	status := props.Text{Size: 8, Top: 1, Style: fontstyle.Bold, Color: colorPrimary}
	statusText := "Sincronizat"
	if !t.Persisted {
		status.Color = colorWarn
		statusText = "Nesincronizat: " + nonEmpty(t.RemoteMessage, "fără răspuns")
	}

	details := col.New(8).Add(text.New(statusText, status))
	if len(lines) > 0 {
		details.Add(text.New(strings.Join(lines, "\n"), props.Text{Size: 8, Top: 6, Color: colorGray}))
	}
	return []core.Row{
		row.New(3),
		row.New(32).Add(
			details,
			col.New(4).Add(code.NewQr(t.ID, props.Rect{Center: true, Percent: 90})),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatKg separa miles con punto y conserva los decimales introducidos: 32000.5 -> "32.000,5".
func formatKg(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf)
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
