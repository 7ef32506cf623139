package settlement

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestService_ExportWeek(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)

	export, err := w.svc.ExportWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.Equal(t, "semana_20250106_20250112.xlsx", export.FileName)
	assert.Equal(t, XLSXContentType, export.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Semana 2"}, f.GetSheetList())
	rows, err := f.GetRows("Semana 2")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])

	row := rows[1]
	assert.Equal(t, "Ana Gómez", row[0])
	assert.Equal(t, "AB123CD", row[2])
	assert.Equal(t, "Luis Pérez", row[3])
	assert.Equal(t, "350", row[5])
	assert.Equal(t, "7", row[6])
	assert.Equal(t, "2450", row[7])
	assert.Equal(t, "367.5", row[10])
	assert.Equal(t, "15", row[11])
}

func TestService_ExportWeek_ConfirmationDate(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)
	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)

	_, err = w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{{
		ID:               detail.Items[0].ID,
		WeeklyPrice:      detail.Items[0].WeeklyPrice,
		DaysWorked:       7,
		ConfirmationDate: "2025-01-09",
		Confirmed:        true,
	}}})
	require.NoError(t, err)

	export, err := w.svc.ExportWeek(ctx, week.ID)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	value, err := f.GetCellValue("Semana 2", "P2")
	require.NoError(t, err)
	assert.Equal(t, "09/01/2025", value)
}

func TestService_ExportWeek_NotFound(t *testing.T) {
	w := newWorld(t)
	_, err := w.svc.ExportWeek(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
