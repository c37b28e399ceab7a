// internal/api/api.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/smartheater/internal/poller"
	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/session"
	"github.com/tamzrod/smartheater/internal/status"
)

// Server exposes one heater session over HTTP.
type Server struct {
	sess      *session.Session
	latest    *poller.Latest
	version   string
	buildDate string
}

// New creates an API server. latest may be nil when polling is disabled.
func New(sess *session.Session, latest *poller.Latest, version, buildDate string) *Server {
	return &Server{sess: sess, latest: latest, version: version, buildDate: buildDate}
}

// Router returns the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/version", s.versionInfo).Methods("GET")
	router.HandleFunc("/status", s.getStatus).Methods("GET")
	router.HandleFunc("/status", s.clearStatus).Methods("DELETE")

	router.HandleFunc("/attributes", s.listAttributes).Methods("GET")
	router.HandleFunc("/attributes/{name}", s.getAttribute).Methods("GET")
	router.HandleFunc("/attributes/{name}", s.setAttribute).Methods("POST")

	// fixed paths before {r}
	router.HandleFunc("/relays/operating-time", s.getOperatingTime).Methods("GET")
	router.HandleFunc("/relays/{r:[0-9]+}", s.getRelay).Methods("GET")
	router.HandleFunc("/relays/{r:[0-9]+}/min-on", s.setRelayMinOn).Methods("POST")
	router.HandleFunc("/relays/{r:[0-9]+}/min-off", s.setRelayMinOff).Methods("POST")

	router.HandleFunc("/errors", s.getErrorLog).Methods("GET")
	router.HandleFunc("/errors/{i:[0-9]+}", s.getErrorEntry).Methods("GET")
	router.HandleFunc("/identity", s.getIdentity).Methods("GET")
	router.HandleFunc("/snapshot", s.getSnapshot).Methods("GET")

	return router
}

// ---- response helpers ----

type statusBody struct {
	Status string `json:"status"`
	Code   uint8  `json:"code"`
}

func newStatusBody(c status.Code) statusBody {
	return statusBody{Status: c.String(), Code: uint8(c)}
}

type errorBody struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
	Code   *uint8 `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	if err := e.Encode(v); err != nil {
		log.Debugf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorBody{Error: err.Error()})
}

// writeFailure reports a failed transaction with its classified status.
func writeFailure(w http.ResponseWriter, err error) {
	c := status.Classify(err)
	n := uint8(c)
	writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error(), Status: c.String(), Code: &n})
}

func writeCode(w http.ResponseWriter, c status.Code) {
	if c == status.InvalidIndex {
		writeError(w, http.StatusNotFound, registers.ErrInvalidIndex)
		return
	}
	if !c.OK() {
		n := uint8(c)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "write failed", Status: c.String(), Code: &n})
		return
	}
	writeJSON(w, http.StatusOK, newStatusBody(c))
}

func decodeInt(r *http.Request) (int64, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, fmt.Errorf("body must be a JSON number: %w", err)
	}
	return n.Int64()
}

func pathIndex(r *http.Request, key string) int {
	// route patterns guarantee digits; overflow maps to an invalid index
	n, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil {
		return -1
	}
	return n
}

// ---- handlers ----

func (s *Server) versionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Version   string `json:"version"`
		BuildDate string `json:"build_date"`
	}{Version: s.version, BuildDate: s.buildDate})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStatusBody(s.sess.Status(false)))
}

func (s *Server) clearStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStatusBody(s.sess.Status(true)))
}

type attributeInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Words   int    `json:"words"`
	Kind    string `json:"kind"`
	Access  string `json:"access"`
}

func (s *Server) listAttributes(w http.ResponseWriter, r *http.Request) {
	all := registers.All()
	out := make([]attributeInfo, 0, len(all))
	for _, d := range all {
		out = append(out, attributeInfo{
			Name:    d.Name,
			Address: fmt.Sprintf("0x%04X", d.Address),
			Words:   d.Words,
			Kind:    d.Kind.String(),
			Access:  d.Access.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type attributeValue struct {
	Name   string `json:"name"`
	Value  any    `json:"value"`
	Status string `json:"status"`
}

func (s *Server) getAttribute(w http.ResponseWriter, r *http.Request) {
	a, err := registers.Parse(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	v, err := s.sess.Read(a)
	if errors.Is(err, session.ErrNotReadable) {
		writeError(w, http.StatusMethodNotAllowed, err)
		return
	}
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attributeValue{Name: a.String(), Value: v, Status: status.Success.String()})
}

func (s *Server) setAttribute(w http.ResponseWriter, r *http.Request) {
	a, err := registers.Parse(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if d := registers.MustLookup(a); !d.Access.Writable() {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("%w: %s", session.ErrNotWritable, d.Name))
		return
	}

	v, err := decodeInt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := s.sess.Write(a, v)
	if errors.Is(err, session.ErrValueRange) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeCode(w, c)
		return
	}

	log.WithField("attribute", a).Infof("set to %d", v)
	writeJSON(w, http.StatusOK, attributeValue{Name: a.String(), Value: v, Status: c.String()})
}

func (s *Server) getRelay(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.sess.RelayConfiguration(pathIndex(r, "r"))
	if errors.Is(err, registers.ErrInvalidIndex) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) setRelayMinOn(w http.ResponseWriter, r *http.Request) {
	s.setRelayTime(w, r, s.sess.SetRelayMinOnTime)
}

func (s *Server) setRelayMinOff(w http.ResponseWriter, r *http.Request) {
	s.setRelayTime(w, r, s.sess.SetRelayMinOffTime)
}

func (s *Server) setRelayTime(w http.ResponseWriter, r *http.Request, set func(int, uint16) status.Code) {
	v, err := decodeInt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if v < 0 || v > 0xFFFF {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %d seconds", session.ErrValueRange, v))
		return
	}
	writeCode(w, set(pathIndex(r, "r"), uint16(v)))
}

func (s *Server) getOperatingTime(w http.ResponseWriter, r *http.Request) {
	ot, err := s.sess.RelayOperatingTime()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ot)
}

func (s *Server) getErrorLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.sess.ErrorLog()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getErrorEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.sess.ErrorEntry(pathIndex(r, "i"))
	if errors.Is(err, registers.ErrInvalidIndex) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) getIdentity(w http.ResponseWriter, r *http.Request) {
	id, err := s.sess.Identity()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.latest == nil {
		writeError(w, http.StatusNotFound, errors.New("polling disabled"))
		return
	}
	snap, ok := s.latest.Load()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errors.New("no snapshot yet"))
		return
	}

	body := struct {
		poller.Snapshot
		Error string `json:"error,omitempty"`
	}{Snapshot: snap}
	if snap.Err != nil {
		body.Error = snap.Err.Error()
	}
	writeJSON(w, http.StatusOK, body)
}
