package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
	"github.com/ChicagoDave/aerostat/pkg/validation"
)

const (
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// Frame types sent on /ws/profile.
const (
	FramePoint   = "point"
	FrameSummary = "summary"
	FrameError   = "error"
)

// Frame is one websocket message. Exactly one payload field is set,
// selected by Type.
type Frame struct {
	Type       string             `json:"type"`
	Point      *analysis.Point    `json:"point,omitempty"`
	Summary    *ProfileSummary    `json:"summary,omitempty"`
	Error      string             `json:"error,omitempty"`
	Validation *validation.Report `json:"validation,omitempty"`
}

// ProfileSummary closes a streamed profile.
type ProfileSummary struct {
	Points        int     `json:"points"`
	NoLift        int     `json:"no_lift"`
	Failed        int     `json:"failed"`
	BestHeightM   float64 `json:"best_height_m"`
	BestPayloadKg float64 `json:"best_payload_kg"`
}

func (ps *ProfileSummary) add(p analysis.Point) {
	ps.Points++
	switch p.Status {
	case analysis.StatusNoLift:
		ps.NoLift++
		return
	case analysis.StatusFailed:
		ps.Failed++
		return
	}
	if ps.Points-ps.NoLift-ps.Failed == 1 || p.Result.PayloadKg > ps.BestPayloadKg {
		ps.BestHeightM = p.HeightM
		ps.BestPayloadKg = p.Result.PayloadKg
	}
}

// handleProfileWS reads one balloon spec message, then streams a point frame
// per profile height followed by a summary frame.
func (s *Server) handleProfileWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxBodyBytes)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.WithError(err).Debug("websocket closed before spec")
		return
	}

	bs, req, frame := s.wsRequest(msg)
	if frame != nil {
		s.sendFrame(conn, *frame)
		closeNormal(conn)
		return
	}

	var summary ProfileSummary
	err = analysis.WalkProfile(req, bs.Analysis.MaxHeightM, bs.Analysis.StepM, func(p analysis.Point) error {
		summary.add(p)
		return s.sendFrame(conn, Frame{Type: FramePoint, Point: &p})
	})
	if err != nil {
		if _, ok := err.(*websocket.CloseError); !ok {
			s.sendFrame(conn, Frame{Type: FrameError, Error: err.Error()})
		}
		log.WithError(err).Debug("profile stream stopped")
		return
	}
	s.sendFrame(conn, Frame{Type: FrameSummary, Summary: &summary})
	closeNormal(conn)
}

// wsRequest turns the first message into a solver request, or an error
// frame to send back.
func (s *Server) wsRequest(msg []byte) (*spec.BalloonSpec, solver.Request, *Frame) {
	bs, err := spec.Parse(msg)
	if err != nil {
		return nil, solver.Request{}, &Frame{Type: FrameError, Error: err.Error()}
	}
	s.cfg.Apply(bs)
	if report := validation.ValidateSchema(bs); !report.Valid {
		return nil, solver.Request{}, &Frame{Type: FrameError, Error: report.Err().Error(), Validation: report}
	}
	req, err := bs.Request()
	if err != nil {
		return nil, solver.Request{}, &Frame{Type: FrameError, Error: err.Error()}
	}
	return bs, req, nil
}

func (s *Server) sendFrame(conn *websocket.Conn, f Frame) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(f)
}

func closeNormal(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}
