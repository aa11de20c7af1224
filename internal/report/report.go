// Package report writes management data as .xlsx workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/omsctl/internal/platform"
)

// TimeLayout is used for every timestamp cell
const TimeLayout = "2006-01-02 15:04"

const defaultSheet = "Sheet1"

// Sheet is one worksheet: a header row followed by data rows
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Employees lists staff with their role and PTO balance
func Employees(employees []platform.Employee) Sheet {
	s := Sheet{
		Name:   "Employees",
		Header: []string{"ID", "Email", "First Name", "Last Name", "Role", "Reporting Manager", "PTO Balance (days)"},
	}
	for _, e := range employees {
		var manager any
		if !e.ReportingManager.IsZero() {
			manager = e.ReportingManager.String()
		}
		s.Rows = append(s.Rows, []any{
			e.ID.String(), e.Email, e.FirstName, e.LastName, string(e.Role), manager, float64(e.PTOBalanceDays),
		})
	}
	return s
}

// AuditLog lists staff status changes
func AuditLog(entries []platform.StatusAuditEntry) Sheet {
	s := Sheet{
		Name:   "Status Audit",
		Header: []string{"ID", "Time", "User", "Changed By", "Old Status", "New Status", "Reason"},
	}
	for _, e := range entries {
		s.Rows = append(s.Rows, []any{
			e.ID.String(), e.ChangeTime.Format(TimeLayout), e.UserEmail, e.ChangedByEmail, e.OldStatus, e.NewStatus, e.StatusReason,
		})
	}
	return s
}

// KPIs is a two-column indicator sheet
func KPIs(k platform.KPIs) Sheet {
	return Sheet{
		Name:   "KPIs",
		Header: []string{"Indicator", "Value"},
		Rows: [][]any{
			{"Average Cycle Time (min)", k.AverageCycleTimeMinutes},
			{"Protocol Adherence (%)", k.ProtocolAdherencePercent},
			{"Sales Planning Adherence", k.SalesPlanningAdherenceRate},
		},
	}
}

// GPS lists recorded location fixes
func GPS(points []platform.GPSPoint) Sheet {
	s := Sheet{
		Name:   "GPS",
		Header: []string{"ID", "User", "Latitude", "Longitude", "Recorded At"},
	}
	for _, p := range points {
		s.Rows = append(s.Rows, []any{
			p.ID.String(), p.UserEmail, p.Latitude, p.Longitude, p.RecordedAt.Format(TimeLayout),
		})
	}
	return s
}

// Write renders sheets into a single workbook, in order, with a bold
// frozen header row.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("report: no sheets")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return fmt.Errorf("report: sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("report: sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, header); err != nil {
			return fmt.Errorf("report: sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	row := make([]any, len(s.Header))
	for i, h := range s.Header {
		row[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &row); err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(s.Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.Name, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(s.Name, "A", last, 20); err != nil {
		return err
	}

	for i, r := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
			return err
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
