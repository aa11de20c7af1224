package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/omsctl/internal/domain"
	omserrors "github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/report"
	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

type exportDoc struct {
	File   string   `json:"file" yaml:"file"`
	Sheets []string `json:"sheets" yaml:"sheets"`
}

// sheetSource fetches the data for one worksheet
type sheetSource func(ctx context.Context) (report.Sheet, error)

func (c *cli) newExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write management data to an Excel workbook (managers)",
		Long: `Write management data to an .xlsx workbook.

Each export needs the same access as the page showing its data: staff
exports need the status override page, the rest need analytics.

Examples:
  omsctl export audit
  omsctl export all --file weekly.xlsx`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "workbook to write (default oms-<kind>-<date>.xlsx)")

	add := func(use, short, path string, source sheetSource) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if ok, err := c.enter(cmd, path); !ok || err != nil {
					return err
				}
				return c.export(cmd, file, use, []sheetSource{source})
			},
		})
	}
	add("audit", "Export the status change audit log", router.PathAnalytics, c.auditSheet)
	add("kpis", "Export the operational KPIs", router.PathAnalytics, c.kpiSheet)
	add("gps", "Export GPS history", router.PathAnalytics, c.gpsSheet)
	add("employees", "Export the staff list", router.PathStaffOverride, c.employeeSheet)

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Export every sheet your role may read into one workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := c.enter(cmd, router.PathAnalytics); !ok || err != nil {
				return err
			}
			sources := []sheetSource{c.kpiSheet, c.auditSheet, c.gpsSheet}
			if c.app.Gate.Can(domain.CapOverrideStatus) {
				sources = append(sources, c.employeeSheet)
			}
			return c.export(cmd, file, "all", sources)
		},
	})
	return cmd
}

// export fetches every sheet concurrently and writes them in the given order
func (c *cli) export(cmd *cobra.Command, file, kind string, sources []sheetSource) error {
	if file == "" {
		file = fmt.Sprintf("oms-%s-%s.xlsx", kind, time.Now().Format("20060102"))
	}

	sheets := make([]report.Sheet, len(sources))
	p := pool.New().WithContext(cmd.Context()).WithCancelOnError().WithFirstError()
	for i, src := range sources {
		p.Go(func(ctx context.Context) error {
			s, err := src(ctx)
			if err != nil {
				return err
			}
			sheets[i] = s
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, sheets...); err != nil {
		return omserrors.Wrap(omserrors.ErrCodeFileWriteFailed, "cannot build workbook", err)
	}

	fs := c.opts.Fs
	if dir := filepath.Dir(file); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return omserrors.Wrap(omserrors.ErrCodeFileWriteFailed, "cannot create "+dir, err)
		}
	}
	if err := afero.WriteFile(fs, file, buf.Bytes(), 0o644); err != nil {
		return omserrors.Wrap(omserrors.ErrCodeFileWriteFailed, "cannot write "+file, err)
	}

	doc := exportDoc{File: file}
	for _, s := range sheets {
		doc.Sheets = append(doc.Sheets, s.Name)
	}
	c.app.Logger.Info("export.written", "file", file, "sheets", len(sheets))

	msg := views.Message{Kind: views.KindSuccess, Text: fmt.Sprintf("Wrote %d sheet(s) to %s.", len(sheets), file)}
	return c.emit(cmd, doc, c.app.Renderer.Message(msg))
}

func (c *cli) auditSheet(ctx context.Context) (report.Sheet, error) {
	entries, err := c.app.Client.StatusAuditLog(ctx)
	if err != nil {
		return report.Sheet{}, err
	}
	return report.AuditLog(entries), nil
}

func (c *cli) kpiSheet(ctx context.Context) (report.Sheet, error) {
	k, err := c.app.Client.KPIs(ctx)
	if err != nil {
		return report.Sheet{}, err
	}
	return report.KPIs(*k), nil
}

func (c *cli) gpsSheet(ctx context.Context) (report.Sheet, error) {
	points, err := c.app.Client.GPSHistory(ctx)
	if err != nil {
		return report.Sheet{}, err
	}
	return report.GPS(points), nil
}

func (c *cli) employeeSheet(ctx context.Context) (report.Sheet, error) {
	employees, err := c.app.Client.Employees(ctx)
	if err != nil {
		return report.Sheet{}, err
	}
	return report.Employees(employees), nil
}
