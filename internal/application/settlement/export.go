package settlement

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXContentType is the MIME type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxColumnWidth = 50

var exportHeaders = []string{
	"Propietario", "Vehículo", "Placa", "Inquilino", "Tel. Inquilino",
	"Semanal", "DT", "Ingreso", "Inversión", "Concepto Desc.",
	"Nómina", "% Empresa", "Deuda", "Nómina 2", "Banco",
	"Conf. Pago", "DT2",
}

// Export is a rendered workbook ready to be sent as an attachment
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportWeek renders a week and its items as an .xlsx workbook
func (s *Service) ExportWeek(ctx context.Context, weekID uuid.UUID) (*Export, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "ExportWeek", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	week, err := s.store.Weeks().FindByID(ctx, weekID)
	if err != nil {
		return nil, err
	}
	details, err := s.store.WeekDetails().ItemDetails(ctx, weekID)
	if err != nil {
		return nil, err
	}

	content, err := renderWorkbook(week, details)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to render settlement workbook", zap.String("week_id", weekID.String()), zap.Error(err))
		return nil, err
	}
	return &Export{
		FileName:    ExportFileName(week),
		ContentType: XLSXContentType,
		Content:     content,
	}, nil
}

// ExportFileName is semana_<start>_<end>.xlsx with compact dates
func ExportFileName(week *settlement.Week) string {
	return fmt.Sprintf("semana_%s_%s.xlsx", week.StartDate.Format("20060102"), week.EndDate.Format("20060102"))
}

// SheetName is the title of the single sheet of a week workbook
func SheetName(week *settlement.Week) string {
	return fmt.Sprintf("Semana %d", week.WeekNumber)
}

func renderWorkbook(week *settlement.Week, details []settlement.ItemDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(week)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	widths := make([]int, len(exportHeaders))
	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range details {
		d := &details[i]
		row := []interface{}{
			d.OwnerName,
			d.BrandModel,
			d.Plate,
			d.TenantName,
			d.TenantPhone,
			d.WeeklyPrice.InexactFloat64(),
			d.DaysWorked,
			d.Income.InexactFloat64(),
			d.MechanicalInvestment.InexactFloat64(),
			d.DiscountConcept,
			d.CompanyCut.InexactFloat64(),
			d.CompanyPercentage.InexactFloat64(),
			d.DebtAmount.InexactFloat64(),
			d.FinalPayout.InexactFloat64(),
			d.BankName,
			confirmationDate(&d.LineItem),
			d.DaysWorked,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
		for c, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return nil, err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(w+2, maxColumnWidth))); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func confirmationDate(item *settlement.LineItem) string {
	if item.ConfirmationDate == nil {
		return ""
	}
	return item.ConfirmationDate.Format("02/01/2006")
}
