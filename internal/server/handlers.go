package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/cost"
	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/material"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/preset"
	"github.com/ChicagoDave/aerostat/pkg/scene"
	"github.com/ChicagoDave/aerostat/pkg/scene2d"
	"github.com/ChicagoDave/aerostat/pkg/shape"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
	"github.com/ChicagoDave/aerostat/pkg/validation"
)

type errorBody struct {
	Error      string             `json:"error"`
	Validation *validation.Report `json:"validation,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encoding response")
	}
}

// statusFor maps engine error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNoLift):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidReference),
		errors.Is(err, errs.ErrInvalidTemperature),
		errors.Is(err, errs.ErrValidation),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, preset.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

// decodeSpec reads a balloon spec from the body. JSON and YAML are both
// accepted. Unset pattern and analysis settings come from the config.
func (s *Server) decodeSpec(r *http.Request) (*spec.BalloonSpec, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", errBadRequest, err)
	}
	bs, err := spec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	s.cfg.Apply(bs)
	return bs, nil
}

// checkedRequest decodes and schema-validates the body. On failure the
// response has been written and ok is false.
func (s *Server) checkedRequest(w http.ResponseWriter, r *http.Request) (*spec.BalloonSpec, solver.Request, bool) {
	bs, err := s.decodeSpec(r)
	if err != nil {
		writeError(w, err)
		return nil, solver.Request{}, false
	}
	if report := validation.ValidateSchema(bs); !report.Valid {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: report.Err().Error(), Validation: report})
		return nil, solver.Request{}, false
	}
	req, err := bs.Request()
	if err != nil {
		writeError(w, err)
		return nil, solver.Request{}, false
	}
	return bs, req, true
}

type solveResponse struct {
	Result solver.Result `json:"result"`
	Budget solver.Budget `json:"budget"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	res, err := solver.Solve(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{
		Result: res,
		Budget: solver.NewBudget(res, bs.Budget.ReinforcementsKg, bs.Budget.SafetyMarginPercent),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	bs, err := s.decodeSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validation.Validate(bs))
}

func (s *Server) handleOptimalHeight(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	strategy := analysis.StrategyGrid
	if bs.Analysis.Optimizer {
		strategy = analysis.StrategyOptimizer
	}
	opt, err := analysis.OptimalHeight(req, strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opt)
}

func (s *Server) handleHeightProfile(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	points, err := analysis.HeightProfile(req, bs.Analysis.MaxHeightM, bs.Analysis.StepM)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	_, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	rows, err := analysis.MaterialComparison(req, req.HeightM())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"height_m": req.HeightM(), "materials": rows})
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	_, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	report, err := cost.Analyze(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleFlightTime(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	e, err := analysis.FlightTime(req, bs.Analysis.MinPayloadKg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type patternResponse struct {
	Pattern     *pattern.Pattern `json:"pattern"`
	Fabric      pattern.Fabric   `json:"fabric"`
	SeamLengthM float64          `json:"seam_length_m"`
}

// solvedPattern generates the cutting pattern of the solved envelope.
func solvedPattern(bs *spec.BalloonSpec, req solver.Request) (*patternResponse, error) {
	res, err := solver.Solve(req)
	if err != nil {
		return nil, err
	}
	p, err := pattern.Generate(res.Shape, bs.Pattern.Gores, bs.Pattern.SeamAllowanceMM)
	if err != nil {
		return nil, err
	}
	return &patternResponse{
		Pattern:     p,
		Fabric:      pattern.EstimateFabric(p, bs.Pattern.FabricWidthMM, bs.Pattern.GapMM),
		SeamLengthM: pattern.SeamLength(p),
	}, nil
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	out, err := solvedPattern(bs, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLayout places every cut piece on the fabric roll.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	bs, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	out, err := solvedPattern(bs, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scene2d.Assemble2D(out.Pattern, out.Fabric))
}

type meshResponse struct {
	Mesh       *scene.Mesh        `json:"mesh"`
	Validation *validation.Report `json:"validation"`
}

// handleMesh takes optional theta and z query parameters for the
// tessellation.
func (s *Server) handleMesh(w http.ResponseWriter, r *http.Request) {
	_, req, ok := s.checkedRequest(w, r)
	if !ok {
		return
	}
	theta, err := queryInt(r, "theta", scene.DefaultTheta)
	if err != nil {
		writeError(w, err)
		return
	}
	z, err := queryInt(r, "z", scene.DefaultZ)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := solver.Solve(req)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := scene.NewMesh(res.Shape, theta, z)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meshResponse{Mesh: m, Validation: scene.Validate(m)})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Invalid(key, "%q is not an integer", v)
	}
	return n, nil
}

type catalog struct {
	Gases     []gas.Type          `json:"gases"`
	Materials []material.Material `json:"materials"`
	Shapes    []shape.Kind        `json:"shapes"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog{
		Gases:     gas.Types(),
		Materials: material.All(),
		Shapes:    shape.Kinds(),
	})
}

func (s *Server) handleAssumptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"assumptions": solver.Assumptions()})
}

func (s *Server) handlePresetList(w http.ResponseWriter, _ *http.Request) {
	names := s.presets.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": names})
}

func (s *Server) handlePresetGet(w http.ResponseWriter, r *http.Request) {
	bs, err := s.presets.Get(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (s *Server) handlePresetPut(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	bs, err := s.decodeSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if report := validation.ValidateSchema(bs); !report.Valid {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: report.Err().Error(), Validation: report})
		return
	}
	if err := s.presets.Put(name, *bs); err != nil {
		writeError(w, err)
		return
	}
	if err := s.presets.Save(); err != nil {
		writeError(w, err)
		return
	}
	saved, err := s.presets.Get(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handlePresetDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.presets.Delete(mux.Vars(r)["name"]); err != nil {
		writeError(w, err)
		return
	}
	if err := s.presets.Save(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
