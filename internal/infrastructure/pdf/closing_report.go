// Package pdf implementa la generación del comprobante de cierre de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de caja  │  N° de sesión + Fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OPERADOR: nombre + ID                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medio | Esperado | Contado | Diferencia             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESULTADO: conciliada / divergencia + severidad            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// kzPrinter formatea montos con separador de miles al estilo pt (1 234 567,89).
var kzPrinter = message.NewPrinter(language.Portuguese)

// ── Generator ─────────────────────────────────────────────────────────────────

// ClosingReportGenerator genera el comprobante PDF de cierre de sesión con Maroto v2.
type ClosingReportGenerator struct{}

// NewClosingReportGenerator construye el generador.
func NewClosingReportGenerator() *ClosingReportGenerator { return &ClosingReportGenerator{} }

// Generate genera el PDF de cierre y devuelve sus bytes. La sesión debe estar CLOSED.
func (g *ClosingReportGenerator) Generate(session *entity.RegisterSession, operator *entity.User) ([]byte, error) {
	if session == nil || !isClosed(session) {
		return nil, fmt.Errorf("pdf: la sesión no está cerrada")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Cierre de Caja", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(operatorRow(session, operator))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(bucketRow("Efectivo", session.ExpectedCash, session.ReportedCash, session.CashDiff))
	m.AddRows(bucketRow("Tarjeta / digital", session.ExpectedCard, session.ReportedCard, session.CardDiff))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resultRow(session))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la caja (izq), sesión + fechas (der).
func headerRow(session *entity.RegisterSession) core.Row {
	closedAt := "—"
	if session.ClosedAt != nil {
		closedAt = session.ClosedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(session.RegisterName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fondo inicial: "+formatKz(session.InitialCash), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Sesión "+session.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Apertura: %s   Cierre: %s",
				session.OpenedAt.Format("02/01/2006 15:04"), closedAt),
				props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

// operatorRow: datos del operador responsable de la sesión.
func operatorRow(session *entity.RegisterSession, operator *entity.User) core.Row {
	name := session.OperatorID
	if operator != nil {
		name = fmt.Sprintf("%s (%s)", operator.FullName, operator.ID)
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("OPERADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(8).Add(
		col.New(4).Add(text.New("Medio de pago", header)),
		col.New(3).Add(text.New("Esperado", headerRight)),
		col.New(3).Add(text.New("Contado", headerRight)),
		col.New(2).Add(text.New("Diferencia", headerRight)),
	)
}

// bucketRow: una fila de conciliación (efectivo o tarjeta).
func bucketRow(label string, expected decimal.Decimal, reported, diff *decimal.Decimal) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	diffProps := cellRight
	if diff != nil && !diff.IsZero() {
		diffProps.Color = colorAlert
		diffProps.Style = fontstyle.Bold
	}
	return row.New(7).Add(
		col.New(4).Add(text.New(label, cell)),
		col.New(3).Add(text.New(formatKz(expected), cellRight)),
		col.New(3).Add(text.New(formatKzPtr(reported), cellRight)),
		col.New(2).Add(text.New(formatKzPtr(diff), diffProps)),
	)
}

// resultRow: conciliada o con divergencia.
func resultRow(session *entity.RegisterSession) core.Row {
	reconciled := session.CashDiff != nil && session.CashDiff.IsZero() &&
		session.CardDiff != nil && session.CardDiff.IsZero()
	if reconciled {
		return row.New(10).Add(col.New(12).Add(
			text.New("SESIÓN CONCILIADA: los totales contados coinciden con los esperados.", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		))
	}
	return row.New(10).Add(col.New(12).Add(
		text.New("SESIÓN CON DIVERGENCIA: revisar la trilla de auditoría de la caja.", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorAlert, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func isClosed(s *entity.RegisterSession) bool {
	return s.Status == entity.SessionClosed
}

// formatKz formatea un monto en kwanzas con separador de miles.
func formatKz(d decimal.Decimal) string {
	f, _ := d.Float64()
	return kzPrinter.Sprintf("Kz %.2f", f)
}

func formatKzPtr(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return formatKz(*d)
}
