package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/chart"
	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/export"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
	"github.com/ChicagoDave/aerostat/pkg/validation"
)

const (
	contentPDF  = "application/pdf"
	contentXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentPNG  = "image/png"
	contentSVG  = "image/svg+xml"
)

// sendFile renders into a buffer first so a failed render still gets a
// JSON error instead of a truncated download.
func sendFile(w http.ResponseWriter, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.Write(buf.Bytes())
}

func fileName(bs *spec.BalloonSpec, ext string) string {
	if bs.Name == "" {
		return "balloon" + ext
	}
	return bs.Name + ext
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	bs, _, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	b, err := export.Collect(bs)
	if err != nil {
		writeError(w, err)
		return
	}
	sendFile(w, contentPDF, fileName(bs, "-report.pdf"), func(out io.Writer) error {
		return export.WriteReport(out, b)
	})
}

// handlePatternPDF prints the pattern shrunk to fit, or at 1:1 across
// pages with ?scale=full. page, overlap and grid=off tune full-size output.
func (s *Server) handlePatternPDF(w http.ResponseWriter, r *http.Request) {
	full := r.URL.Query().Get("scale") == "full"
	var opts export.TileOptions
	if full {
		var err error
		if opts, err = tileOptions(r); err != nil {
			writeError(w, err)
			return
		}
	}
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	p, err := solvedPattern(bs, req)
	if err != nil {
		writeError(w, err)
		return
	}
	if full {
		sendFile(w, contentPDF, fileName(bs, "-pattern-1to1.pdf"), func(out io.Writer) error {
			return export.WritePatternFullSize(out, p.Pattern, opts)
		})
		return
	}
	sendFile(w, contentPDF, fileName(bs, "-pattern.pdf"), func(out io.Writer) error {
		return export.WritePattern(out, p.Pattern, &p.Fabric)
	})
}

func tileOptions(r *http.Request) (export.TileOptions, error) {
	q := r.URL.Query()
	page, err := export.ParsePageSize(q.Get("page"))
	if err != nil {
		return export.TileOptions{}, err
	}
	opts := export.TileOptions{PageSize: page, NoGrid: q.Get("grid") == "off"}
	if v := q.Get("overlap"); v != "" {
		if opts.OverlapMM, err = strconv.ParseFloat(v, 64); err != nil {
			return export.TileOptions{}, errs.Invalid("overlap", "not a number: %q", v)
		}
	}
	return opts, nil
}

func (s *Server) handlePatternSVG(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	p, err := solvedPattern(bs, req)
	if err != nil {
		writeError(w, err)
		return
	}
	sendFile(w, contentSVG, fileName(bs, "-pattern.svg"), func(out io.Writer) error {
		return export.WritePatternSVG(out, p.Pattern)
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	bs, _, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	b, err := export.Collect(bs)
	if err != nil {
		writeError(w, err)
		return
	}
	sendFile(w, contentXLSX, fileName(bs, ".xlsx"), func(out io.Writer) error {
		return export.WriteWorkbook(out, b)
	})
}

func (s *Server) handleProfilePNG(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	points, err := analysis.HeightProfile(req, bs.Analysis.MaxHeightM, bs.Analysis.StepM)
	if err != nil {
		writeError(w, err)
		return
	}
	title := fmt.Sprintf("%s %s envelope", req.Gas, req.Material)
	sendFile(w, contentPNG, "", func(out io.Writer) error {
		return chart.ProfilePNG(out, points, title)
	})
}

type importResult struct {
	Row    int                `json:"row"`
	Spec   spec.BalloonSpec   `json:"spec"`
	Result *solver.Result     `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
	Issues *validation.Report `json:"validation,omitempty"`
}

// handleImport solves every row of an uploaded XLSX workbook. Rows fail
// independently.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: file required", errBadRequest))
		return
	}
	defer file.Close()

	rows, err := export.ReadRequests(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	results := make([]importResult, 0, len(rows))
	solved := 0
	for _, row := range rows {
		out := importResult{Row: row.Row, Spec: row.Spec, Error: row.Error}
		if row.Error == "" {
			out.Result, out.Issues, out.Error = solveRow(&row.Spec)
		}
		if out.Result != nil {
			solved++
		}
		results = append(results, out)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"solved":  solved,
		"results": results,
	})
}

func solveRow(bs *spec.BalloonSpec) (*solver.Result, *validation.Report, string) {
	if report := validation.ValidateSchema(bs); !report.Valid {
		return nil, report, report.Err().Error()
	}
	req, err := bs.Request()
	if err != nil {
		return nil, nil, err.Error()
	}
	res, err := solver.Solve(req)
	if err != nil {
		return nil, nil, err.Error()
	}
	return &res, nil, ""
}
