package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/utakatalp/ladder-predictor/internal/fixtures"
	"github.com/utakatalp/ladder-predictor/internal/league"
	"github.com/utakatalp/ladder-predictor/internal/render"
)

// Dependencies are the collaborators a Server needs.
type Dependencies struct {
	Catalog    *fixtures.Catalog
	Logger     zerolog.Logger
	FormWindow int
}

// Server answers ladder queries against a fixed catalog. Every ladder
// request builds its own league.Ladder.
type Server struct {
	catalog    *fixtures.Catalog
	logger     zerolog.Logger
	formWindow int
}

// NewServer builds a Server from deps.
func NewServer(deps Dependencies) *Server {
	return &Server{
		catalog:    deps.Catalog,
		logger:     deps.Logger,
		formWindow: deps.FormWindow,
	}
}

// Router returns the API routes wrapped in CORS and request ID middleware.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/fixtures", s.handleFixtures).Methods(http.MethodGet)
	api.HandleFunc("/fixtures/{round:[0-9]+}", s.handleRound).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/ladder", s.handleDefaultLadder).Methods(http.MethodGet)
	api.HandleFunc("/ladder", s.handlePredictLadder).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return RequestID(s.logger)(c.Handler(router))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.Fixtures()
	if raw := r.URL.Query().Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "", "round must be a positive integer")
			return
		}
		list = s.catalog.Round(n)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fixtures": nonNil(list),
		"count":    len(list),
		"rounds":   s.catalog.Rounds(),
	})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["round"])
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "", "round must be a positive integer")
		return
	}
	list := s.catalog.Round(n)
	if len(list) == 0 {
		writeError(w, http.StatusNotFound, "", fmt.Sprintf("round %d not found", n))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"round": n, "fixtures": list})
}

func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	teams := s.catalog.Teams()
	writeJSON(w, http.StatusOK, map[string]any{"teams": nonNil(teams), "count": len(teams)})
}

// LadderRequest asks for a ladder. With Rounds > 0 every fixture in rounds
// 1..Rounds is predicted 0-0 unless Results holds a score for it, matched
// by round or match number when given and by home and away team otherwise.
// With Rounds == 0 Results is applied as given.
type LadderRequest struct {
	Rounds      int             `json:"rounds"`
	Results     []league.Result `json:"results"`
	SkipInvalid bool            `json:"skip_invalid"`
	FormWindow  *int            `json:"form_window"`
}

type LadderResponse struct {
	Rounds    int          `json:"rounds"`
	Applied   int          `json:"applied"`
	Skipped   []string     `json:"skipped,omitempty"`
	Unmatched []string     `json:"unmatched,omitempty"`
	Standings []render.Row `json:"standings"`
}

func (s *Server) handleDefaultLadder(w http.ResponseWriter, r *http.Request) {
	req := LadderRequest{}
	q := r.URL.Query()
	if raw := q.Get("rounds"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "", "rounds must be an integer")
			return
		}
		req.Rounds = n
	}
	if raw := q.Get("form_window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "", "form_window must be an integer")
			return
		}
		req.FormWindow = &n
	}
	s.serveLadder(w, r, req)
}

func (s *Server) handlePredictLadder(w http.ResponseWriter, r *http.Request) {
	var req LadderRequest
	if err := decodeJSON(r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasSuffix(typeErr.Field, "_score") {
			writeError(w, http.StatusBadRequest, string(league.KindInvalidScore),
				fmt.Sprintf("%v: %s must be an integer", league.ErrInvalidScore, typeErr.Field))
			return
		}
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}
	s.serveLadder(w, r, req)
}

func (s *Server) serveLadder(w http.ResponseWriter, r *http.Request, req LadderRequest) {
	logger := zerolog.Ctx(r.Context())

	if req.Rounds < 0 {
		writeError(w, http.StatusBadRequest, "", "rounds must be >= 0")
		return
	}
	window := s.formWindow
	if req.FormWindow != nil {
		window = *req.FormWindow
	}

	mode := league.RejectBatch
	if req.SkipInvalid {
		mode = league.SkipInvalid
	}

	resp := LadderResponse{Rounds: req.Rounds}
	results := req.Results
	var skipped []error
	if req.Rounds > 0 {
		p, err := s.catalog.Predict(req.Rounds, req.Results, mode)
		if err != nil {
			logger.Info().Err(err).Msg("ladder request rejected")
			writeError(w, http.StatusBadRequest, string(league.KindOf(err)), err.Error())
			return
		}
		for _, res := range p.Unmatched {
			resp.Unmatched = append(resp.Unmatched, res.HomeTeam+" v "+res.AwayTeam)
		}
		if len(resp.Unmatched) > 0 {
			logger.Warn().Strs("pairings", resp.Unmatched).Msg("results without a free fixture in the selected rounds ignored")
		}
		results = p.Results
		skipped = p.Skipped
	}

	ladder, replaySkipped, err := league.Replay(s.catalog.Teams(), results, mode)
	if err != nil {
		logger.Info().Err(err).Msg("ladder request rejected")
		writeError(w, http.StatusBadRequest, string(league.KindOf(err)), err.Error())
		return
	}
	skipped = append(skipped, replaySkipped...)
	for _, e := range skipped {
		resp.Skipped = append(resp.Skipped, e.Error())
	}
	if len(skipped) > 0 {
		logger.Warn().Int("skipped", len(skipped)).Msg("invalid results skipped")
	}

	resp.Applied = len(results) - len(replaySkipped)
	resp.Standings = render.Rows(ladder.Standings(), window)
	writeJSON(w, http.StatusOK, resp)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
