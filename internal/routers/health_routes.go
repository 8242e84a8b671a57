package routers

import (
	"net/http"

	"jobprep/internal/metrics"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// HealthRoutes registers liveness, readiness and metrics endpoints.
// Readiness pings the store; a failure answers 503 so load balancers stop
// routing before requests start failing with StoreUnavailable.
func HealthRoutes(r *chi.Mux, db *gorm.DB) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(req.Context())
		}
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	r.Handle("/metrics", metrics.Handler())
}
