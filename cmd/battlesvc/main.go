package main

import (
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gridclash/engine/internal/battle"
	"github.com/gridclash/engine/internal/config"
)

// server runs battles on demand over HTTP. This is an operator tool for
// exercising the engine against a catalog, not a multiplayer surface.
type server struct {
	catalog *config.Catalog
	logger  *zap.Logger
}

type simulateRequest struct {
	Budget     int   `json:"budget"`
	Seed       int64 `json:"seed"`
	IncludeLog bool  `json:"include_log"`
}

type simulateResponse struct {
	ID         string                `json:"id"`
	Winner     string                `json:"winner"`
	Rounds     int                   `json:"rounds"`
	Attacks    int                   `json:"attacks"`
	Kills      int                   `json:"kills"`
	LeftUnits  int                   `json:"left_units"`
	RightUnits int                   `json:"right_units"`
	LeftAlive  int                   `json:"left_alive"`
	RightAlive int                   `json:"right_alive"`
	Log        []battle.AttackRecord `json:"log,omitempty"`
}

func main() {
	var addr string
	var catalogPath string
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&catalogPath, "catalog", "assets/catalog.yaml", "unit template catalog")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	s := &server{catalog: catalog, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/api/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/units", s.handleUnits).Methods(http.MethodGet)
	r.HandleFunc("/api/units/{type}", s.handleUnit).Methods(http.MethodGet)
	r.HandleFunc("/api/simulate", s.handleSimulate).Methods(http.MethodPost)
	r.Use(s.logRequests)

	logger.Info("battlesvc listening", zap.String("addr", addr), zap.String("catalog", catalogPath))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleUnits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Units)
}

func (s *server) handleUnit(w http.ResponseWriter, r *http.Request) {
	unitType := mux.Vars(r)["type"]
	for _, u := range s.catalog.Units {
		if u.Type == unitType {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown unit type " + unitType})
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return
	}
	if req.Budget <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "budget must be positive"})
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	resp, err := s.runBattle(req)
	if err != nil {
		s.logger.Error("battle aborted", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "battle aborted"})
		return
	}
	s.logger.Info("battle resolved",
		zap.String("id", resp.ID),
		zap.String("winner", resp.Winner),
		zap.Int("rounds", resp.Rounds),
		zap.Int("attacks", resp.Attacks),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) runBattle(req simulateRequest) (*simulateResponse, error) {
	rng := rand.New(rand.NewSource(req.Seed)) // #nosec G404 -- simulation seed

	left := battle.NewPresetBuilder(s.catalog.Templates(), rng).Generate(req.Budget)
	right := battle.NewPresetBuilder(s.catalog.Templates(), rng).Generate(req.Budget)
	battle.MirrorArmy(right)
	battle.AttachFlankPolicies(left, right)

	recorder := battle.NewAttackRecorder()
	sim := battle.NewSimulator(recorder)
	if err := sim.Simulate(left, right); err != nil {
		return nil, err
	}

	resp := &simulateResponse{
		ID:         "b_" + uuid.NewString()[:8],
		Winner:     winner(left, right),
		Rounds:     sim.Rounds(),
		Attacks:    recorder.Len(),
		Kills:      recorder.Kills(),
		LeftUnits:  len(left.Units),
		RightUnits: len(right.Units),
		LeftAlive:  len(left.Living()),
		RightAlive: len(right.Living()),
	}
	if req.IncludeLog {
		resp.Log = recorder.Records()
	}
	return resp, nil
}

func winner(left, right *battle.Army) string {
	switch {
	case left.HasLiving() && !right.HasLiving():
		return "left"
	case right.HasLiving() && !left.HasLiving():
		return "right"
	default:
		return "draw"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
