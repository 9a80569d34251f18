package instances

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, repo Repository, expander *Expander) {
	r.Route("/instances", func(ir chi.Router) {
		ir.Get("/", listInstancesHandler(repo))
		ir.Post("/rebuild", rebuildHandler(expander))
	})
}

type instanceResponse struct {
	RecordID         string `json:"record_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Audience         string `json:"audience"`
	Space            string `json:"space"`
	Start            string `json:"start"`
	End              string `json:"end"`
	FacilitySeriesID string `json:"facility_series_id,omitempty"`
	PublicSeriesID   string `json:"public_series_id,omitempty"`
}

// listInstancesHandler godoc
// @Summary List materialized instances
// @Description Returns the instance rows from the most recent rebuild, in record order then date order.
// @Tags instances
// @Produce json
// @Success 200 {array} instanceResponse
// @Failure 500 {string} string "internal error"
// @Router /instances [get]
func listInstancesHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]instanceResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, instanceResponse{
				RecordID:         row.RecordID,
				Title:            row.Title,
				Description:      row.Description,
				Audience:         row.Audience,
				Space:            row.Space,
				Start:            row.Start.Format(time.RFC3339),
				End:              row.End.Format(time.RFC3339),
				FacilitySeriesID: row.FacilitySeriesID,
				PublicSeriesID:   row.PublicSeriesID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// rebuildHandler godoc
// @Summary Rebuild the instance list
// @Description Discards the current instance list and re-expands every approved recurring record across the configured year.
// @Tags instances
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {string} string "internal error"
// @Router /instances/rebuild [post]
func rebuildHandler(expander *Expander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := expander.Rebuild(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		rows, err := expander.repo.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"rows": len(rows)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
