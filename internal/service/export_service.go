package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
)

// ErrExportGenerateFail the workbook could not be rendered
var ErrExportGenerateFail = errors.New("failed to generate export file")

// ExportService renders session reports for download
//
//   - SessionReport: xlsx workbook with a summary, the batch log and the
//     workstation layout
//   - PulsePlan: iCalendar with one event per batch; done batches end at
//     their checkout, pending ones are projected one pulse apart
type ExportService interface {
	SessionReport(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
	PulsePlan(ctx context.Context, sessionID string) ([]byte, string, error)
}

type exportService struct {
	repo       *repository.Repository
	efficiency EfficiencyService
	logger     *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, efficiency EfficiencyService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, efficiency: efficiency, logger: logger}
}

type batchRow struct {
	batch    model.Batch
	checkout *model.CheckoutEvent
}

func (s *exportService) batchLog(ctx context.Context, sessionID string) ([]batchRow, error) {
	batches, err := s.repo.Batch.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	checkouts, err := s.repo.Checkout.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	byBatch := make(map[string]*model.CheckoutEvent, len(checkouts))
	for i := range checkouts {
		byBatch[checkouts[i].BatchID] = &checkouts[i]
	}
	rows := make([]batchRow, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, batchRow{batch: b, checkout: byBatch[b.ID]})
	}
	return rows, nil
}

// ═══════════════════════════════════════════════════════════
// SessionReport
// ═══════════════════════════════════════════════════════════

func (s *exportService) SessionReport(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	session, err := getSession(ctx, s.repo, sessionID)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.batchLog(ctx, sessionID)
	if err != nil {
		s.logger.Error("load batch log failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, "", err
	}
	eff, err := s.efficiency.Live(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	seats, err := s.repo.Seat.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	assignments, err := s.repo.Assignment.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	ops, err := assignedOperations(ctx, s.repo, assignments)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Summary ──
	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	f.SetColWidth(summary, "A", "A", 28)
	f.SetColWidth(summary, "B", "B", 40)
	done, delayed := 0, 0
	for _, r := range rows {
		if r.batch.Status == model.BatchDone {
			done++
		}
		if r.checkout != nil && r.checkout.IsDelayed {
			delayed++
		}
	}
	pairs := [][2]interface{}{
		{"Session", session.ID},
		{"Production order", session.ProductionOrderID},
		{"Version", session.VersionName},
		{"Pulse (min)", session.PulseDuration},
		{"Batch size", session.BatchSize},
		{"Total quantity", session.TotalQuantity},
		{"Operators", session.OperatorCount},
		{"Batches done", fmt.Sprintf("%d / %d", done, len(rows))},
		{"Delayed checkouts", delayed},
		{"Efficiency (%)", round1(eff.Efficiency)},
		{"Worked minutes", round1(eff.WorkedMinutes)},
		{"Generated at", eff.ComputedAt},
	}
	for i, p := range pairs {
		f.SetCellValue(summary, cell("A", i+1), p[0])
		f.SetCellValue(summary, cell("B", i+1), p[1])
	}

	// ── Batches ──
	batchSheet := "Batches"
	f.NewSheet(batchSheet)
	for i, h := range []string{"Sequence", "Quantity", "Status", "Checkout at", "Delayed", "Operator"} {
		f.SetCellValue(batchSheet, cell(colName(i), 1), h)
		f.SetColWidth(batchSheet, colName(i), colName(i), 22)
	}
	f.SetCellStyle(batchSheet, "A1", cell(colName(5), 1), headerStyle)
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(batchSheet, cell("A", row), r.batch.SequenceNumber)
		f.SetCellValue(batchSheet, cell("B", row), r.batch.Quantity)
		f.SetCellValue(batchSheet, cell("C", row), r.batch.Status)
		if r.checkout != nil {
			f.SetCellValue(batchSheet, cell("D", row), formatTime(r.checkout.CheckoutAt))
			f.SetCellValue(batchSheet, cell("E", row), yesNo(r.checkout.IsDelayed))
			if r.checkout.OperatorID != nil {
				f.SetCellValue(batchSheet, cell("F", row), *r.checkout.OperatorID)
			}
		} else {
			f.SetCellValue(batchSheet, cell("D", row), "-")
		}
	}

	// ── Workstations ──
	wsSheet := "Workstations"
	f.NewSheet(wsSheet)
	for i, h := range []string{"Position", "Operator", "Operation", "Standard min", "Quantity", "Fractioned"} {
		f.SetCellValue(wsSheet, cell(colName(i), 1), h)
		f.SetColWidth(wsSheet, colName(i), colName(i), 22)
	}
	f.SetCellStyle(wsSheet, "A1", cell(colName(5), 1), headerStyle)
	row := 2
	for _, seat := range seatResponses(seats, assignments, ops) {
		for _, a := range seat.Assignments {
			f.SetCellValue(wsSheet, cell("A", row), seat.Position)
			f.SetCellValue(wsSheet, cell("B", row), seat.OperatorID)
			f.SetCellValue(wsSheet, cell("C", row), a.Description)
			f.SetCellValue(wsSheet, cell("D", row), a.FinalTime)
			f.SetCellValue(wsSheet, cell("E", row), a.ExecutedQuantity)
			f.SetCellValue(wsSheet, cell("F", row), yesNo(a.IsFractioned))
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("session_%s.xlsx", shortID(session.ID)), nil
}

// ═══════════════════════════════════════════════════════════
// PulsePlan
// ═══════════════════════════════════════════════════════════

func (s *exportService) PulsePlan(ctx context.Context, sessionID string) ([]byte, string, error) {
	session, err := getSession(ctx, s.repo, sessionID)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.batchLog(ctx, sessionID)
	if err != nil {
		s.logger.Error("load batch log failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, "", err
	}
	events, err := s.repo.Lifecycle.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	pulse := time.Duration(session.PulseDuration) * time.Minute
	stamp := session.CreatedAt

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sgp-costura//pulse plan//EN")
	cal.SetName(fmt.Sprintf("Pulse plan %s", session.VersionName))

	cursor := sessionStart(session, events)
	for _, r := range rows {
		start := cursor
		end := start.Add(pulse)
		status := "pending"
		if r.checkout != nil {
			end = r.checkout.CheckoutAt
			if end.Before(start) {
				start = end
			}
			status = "done"
			if r.checkout.IsDelayed {
				status = "done (delayed)"
			}
		}
		cursor = end

		ev := cal.AddEvent(fmt.Sprintf("%s@sgp-costura", r.batch.ID))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(fmt.Sprintf("Batch %d (%d pcs)", r.batch.SequenceNumber, r.batch.Quantity))
		ev.SetDescription(fmt.Sprintf("session %s, status %s", session.ID, status))
	}

	return []byte(cal.Serialize()), fmt.Sprintf("pulses_%s.ics", shortID(session.ID)), nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
