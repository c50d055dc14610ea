package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/osmnav"
)

// RoutingHandler serves queries against one loaded road network
type RoutingHandler struct {
	rg      *osmnav.RoutingGraph
	router  osmnav.Router
	timeout time.Duration
	logger  *log.Logger
}

type vertexResponse struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type routeResponse struct {
	Vertices []string         `json:"vertices"`
	Minutes  float64          `json:"minutes"`
	Geometry *geojson.Feature `json:"geometry"`
}

type boundsResponse struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

func NewRoutingHandler(rg *osmnav.RoutingGraph, router osmnav.Router, timeout time.Duration, logger *log.Logger) *RoutingHandler {
	return &RoutingHandler{
		rg:      rg,
		router:  router,
		timeout: timeout,
		logger:  logger,
	}
}

func (h *RoutingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/bounds", h.GetBounds).Methods("GET")
	router.HandleFunc("/api/nearest", h.GetNearest).Methods("GET")
	router.HandleFunc("/api/route", h.GetRoute).Methods("GET")
}

func (h *RoutingHandler) GetBounds(w http.ResponseWriter, r *http.Request) {
	b := h.rg.Bounds()
	h.writeJSON(w, http.StatusOK, boundsResponse{
		MinLon: b.MinLon,
		MinLat: b.MinLat,
		MaxLon: b.MaxLon,
		MaxLat: b.MaxLat,
	})
}

func (h *RoutingHandler) GetNearest(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := queryPosition(r, "lat", "lon")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := h.rg.NearestVertex(lat, lon)
	if err != nil {
		h.writeError(w, statusOf(err), err)
		return
	}
	v, _ := h.rg.Vertex(id)
	h.writeJSON(w, http.StatusOK, vertexResponse{ID: string(v.ID), Lat: v.Lat, Lon: v.Lon})
}

// GetRoute accepts either ?from=&to= with vertex ids or ?lat1=&lon1=&lat2=&lon2= with positions
func (h *RoutingHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	var from, to osmnav.VertexID
	if values.Get("from") != "" || values.Get("to") != "" {
		from = osmnav.VertexID(values.Get("from"))
		to = osmnav.VertexID(values.Get("to"))
		if from == "" || to == "" {
			h.writeError(w, http.StatusBadRequest, errors.New("both 'from' and 'to' are required"))
			return
		}
	} else {
		lat1, lon1, err := queryPosition(r, "lat1", "lon1")
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		lat2, lon2, err := queryPosition(r, "lat2", "lon2")
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		if from, err = h.rg.NearestVertex(lat1, lon1); err != nil {
			h.writeError(w, statusOf(err), err)
			return
		}
		if to, err = h.rg.NearestVertex(lat2, lon2); err != nil {
			h.writeError(w, statusOf(err), err)
			return
		}
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	path, err := h.router.ShortestPath(ctx, from, to)
	if err != nil {
		h.logger.Debug("Route query failed", "from", from, "to", to, "err", err)
		h.writeError(w, statusOf(err), err)
		return
	}
	ids := make([]string, len(path.Vertices))
	for i := range path.Vertices {
		ids[i] = string(path.Vertices[i])
	}
	h.writeJSON(w, http.StatusOK, routeResponse{
		Vertices: ids,
		Minutes:  path.Minutes,
		Geometry: h.rg.RouteFeature(path),
	})
}

func queryPosition(r *http.Request, latKey, lonKey string) (float64, float64, error) {
	values := r.URL.Query()
	lat, err := strconv.ParseFloat(values.Get(latKey), 64)
	if err != nil {
		return 0, 0, errors.Errorf("bad '%s' parameter", latKey)
	}
	lon, err := strconv.ParseFloat(values.Get(lonKey), 64)
	if err != nil {
		return 0, 0, errors.Errorf("bad '%s' parameter", lonKey)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.Errorf("position (%s, %s) is out of range", values.Get(latKey), values.Get(lonKey))
	}
	return lat, lon, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, osmnav.ErrVertexNotFound), errors.Is(err, osmnav.ErrNoPath):
		return http.StatusNotFound
	case errors.Is(err, osmnav.ErrEmptyGraph):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *RoutingHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Status is already sent, client has most likely gone
		h.logger.Debug("Can't write response", "status", status, "err", err)
	}
}

func (h *RoutingHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// newServerRouter wires API routes
func newServerRouter(h *RoutingHandler) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func (a *app) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <map>",
		Short: "Serve nearest vertex and route queries over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			rg, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			router, err := a.router(rg)
			if err != nil {
				return err
			}
			timeout, _ := a.cfg.timeout()
			handler := NewRoutingHandler(rg, router, timeout, a.logger)
			return a.listen(cmd.Context(), newServerRouter(handler))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

// listen serves until context is done, then shuts server down gracefully
func (a *app) listen(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server running", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "can't shutdown server")
	}
	a.logger.Info("Server stopped")
	return nil
}
