package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type HealthHandler struct {
	storage       ports.LocalStorage
	storageDriver string
	log           *logger.Logger
	startTime     time.Time
}

func NewHealthHandler(storage ports.LocalStorage, storageDriver string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		storage:       storage,
		storageDriver: storageDriver,
		log:           log,
		startTime:     time.Now().UTC(),
	}
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type ServicesStatus struct {
	App     string `json:"app"`
	Storage string `json:"storage"`
	Driver  string `json:"storage_driver"`
}

type HealthData struct {
	ServicesStatus ServicesStatus `json:"services_status"`
	Uptime         string         `json:"uptime"`
	Memory         MemoryMetrics  `json:"memory"`
	Goroutines     int            `json:"goroutines"`
}

// HandleHealth always answers 200: the cart keeps working in memory when
// storage is down.
func (h *HealthHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storageStatus := "UP"
		if err := h.storage.Ping(r.Context()); err != nil {
			h.log.Warn("Storage health check failed", "error", err, "driver", h.storageDriver)
			storageStatus = "DOWN"
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		data := HealthData{
			ServicesStatus: ServicesStatus{
				App:     "UP",
				Storage: storageStatus,
				Driver:  h.storageDriver,
			},
			Uptime: time.Since(h.startTime).String(),
			Memory: MemoryMetrics{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				NumGC:      mem.NumGC,
			},
			Goroutines: runtime.NumGoroutine(),
		}

		response.WriteSuccess(w, data)
	}
}
