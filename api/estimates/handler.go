package estimates

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/infra/logger"
	"github.com/kilianp07/evsize/infra/mqtt"
)

// Response wraps a computed result with its request identity.
type Response struct {
	RequestID  string        `json:"request_id"`
	ComputedAt time.Time     `json:"computed_at"`
	Result     sizing.Result `json:"result"`
}

// NewHandler exposes the sizing engine via POST /api/estimates. Every
// computation is tagged with a request UUID, forwarded to the metrics sink and
// optionally published; sink and publisher failures are logged, never
// surfaced to the caller.
func NewHandler(engine *sizing.Engine, sink coremetrics.Sink, pub mqtt.Publisher, log logger.Logger) http.Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var in sizing.FleetInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := engine.Compute(in)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, sizing.ErrInvalidInput) || errors.Is(err, sizing.ErrInvalidConfiguration) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}

		ev := coremetrics.EstimateEvent{
			RequestID:             uuid.NewString(),
			VehicleCount:          in.VehicleCount,
			AvgAnnualKmPerVehicle: in.AvgAnnualKmPerVehicle,
			Result:                res,
			ComputedAt:            time.Now().UTC(),
		}
		if err := sink.RecordEstimate(ev); err != nil {
			log.Errorf("record estimate %s: %v", ev.RequestID, err)
		}
		if pub != nil {
			if err := pub.PublishEstimate(ev); err != nil {
				log.Errorf("publish estimate %s: %v", ev.RequestID, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		resp := Response{RequestID: ev.RequestID, ComputedAt: ev.ComputedAt, Result: res}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Errorf("encode response %s: %v", ev.RequestID, err)
		}
	})
}

// NewHealthHandler reports service liveness via GET /api/health.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
