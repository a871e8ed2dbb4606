package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_SessionReport(t *testing.T) {
	env := newTestEnv(t)
	id := env.syncSession(t, 40, 200).SessionID
	env.start(t, id)
	env.clock.Advance(61 * time.Minute)
	env.checkout(t, id, 1)

	buf, filename, err := env.svc.Export.SessionReport(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "session_"+id[:8]+".xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Batches", "Workstations"}, f.GetSheetList())

	version, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "V1", version)

	rows, err := f.GetRows("Batches")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Sequence", rows[0][0])
	assert.Equal(t, []string{"1", "40", "done"}, rows[1][:3])
	assert.Equal(t, "yes", rows[1][4])
	assert.Equal(t, "-", rows[2][3])

	stations, err := f.GetRows("Workstations")
	require.NoError(t, err)
	assert.Len(t, stations, 4)
}

func TestExportService_PulsePlan(t *testing.T) {
	env := newTestEnv(t)
	id := env.syncSession(t, 40, 200).SessionID
	env.start(t, id)
	env.clock.Advance(45 * time.Minute)
	env.checkout(t, id, 1)

	data, filename, err := env.svc.Export.PulsePlan(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "pulses_"+id[:8]+".ics", filename)

	ics := string(data)
	assert.Equal(t, 5, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "SUMMARY:Batch 1 (40 pcs)")
	// batch 1 ran 08:00-08:45, batch 2 is projected 08:45-09:45
	assert.Contains(t, ics, "DTSTART:20260302T084500Z")
	assert.Contains(t, ics, "DTEND:20260302T094500Z")
}

func TestExportService_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.svc.Export.SessionReport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = env.svc.Export.PulsePlan(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
