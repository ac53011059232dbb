package api

import (
	"encoding/json"
	"net/http"
)

// Handler methods for routerHandlers.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	groupVolumes := make(map[string]float32, len(h.groups))
	for _, g := range h.groups {
		groupVolumes[g] = h.engine.GroupVolume(g)
	}
	peak, rms := h.engine.VUMeter()

	writeJSON(w, map[string]interface{}{
		"sampleRate":   h.engine.SampleRate(),
		"channels":     h.engine.Channels(),
		"groupVolumes": groupVolumes,
		"vu": map[string]float64{
			"peak": peak,
			"rms":  rms,
		},
	})
}

func (h *routerHandlers) handleSetGroupVolume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Group  string  `json:"group"`
		Volume float32 `json:"volume"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Group == "" {
		writeError(w, "group is required", http.StatusBadRequest)
		return
	}
	if req.Volume < 0 {
		writeError(w, "volume must be non-negative", http.StatusBadRequest)
		return
	}

	h.engine.SetGroupVolume(req.Group, req.Volume)
	writeJSON(w, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
