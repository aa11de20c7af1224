package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	"github.com/felixgeelhaar/omsctl/internal/platform"
)

func open(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_SheetsInOrder(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		KPIs(platform.KPIs{AverageCycleTimeMinutes: 42.5, ProtocolAdherencePercent: 97, SalesPlanningAdherenceRate: 0.8}),
		Employees(nil),
	)
	require.NoError(t, err)

	f := open(t, &buf)
	assert.Equal(t, []string{"KPIs", "Employees"}, f.GetSheetList())

	rows, err := f.GetRows("KPIs")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Indicator", "Value"}, rows[0])
	assert.Equal(t, []string{"Average Cycle Time (min)", "42.5"}, rows[1])
	assert.Equal(t, []string{"Protocol Adherence (%)", "97"}, rows[2])

	rows, err = f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty listing still gets a header")
}

func TestWrite_NoSheets(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf))
	assert.Zero(t, buf.Len())
}

func TestEmployees(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Employees([]platform.Employee{
		{ID: "7", Email: "rep@oms.test", FirstName: "Rita", LastName: "Rep", Role: domain.RoleSalesRep, ReportingManager: "2", PTOBalanceDays: 10.5},
		{ID: "2", Email: "hlm@oms.test", FirstName: "Hal", LastName: "Lead", Role: domain.RoleHighLevelManager},
	})))

	rows, err := open(t, &buf).GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"7", "rep@oms.test", "Rita", "Rep", "Sales Rep", "2", "10.5"}, rows[1])
	assert.Equal(t, "", rows[2][5], "no manager leaves the cell empty")
}

func TestAuditLogAndGPS(t *testing.T) {
	at := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf,
		AuditLog([]platform.StatusAuditEntry{{
			ID: "1", ChangeTime: at, UserEmail: "rep@oms.test", ChangedByEmail: "hlm@oms.test",
			OldStatus: "Available", NewStatus: "Unavailable", StatusReason: "Sick",
		}}),
		GPS([]platform.GPSPoint{{ID: "9", UserEmail: "rep@oms.test", Latitude: 51.5, Longitude: -0.12, RecordedAt: at}}),
	))

	f := open(t, &buf)

	rows, err := f.GetRows("Status Audit")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2026-03-04 09:30", "rep@oms.test", "hlm@oms.test", "Available", "Unavailable", "Sick"}, rows[1])

	rows, err = f.GetRows("GPS")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"9", "rep@oms.test", "51.5", "-0.12", "2026-03-04 09:30"}, rows[1])
}
