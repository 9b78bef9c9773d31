package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app.frontend == nil {
		status.Status = "degraded"
		status.Components["frontend"] = "missing"
	} else {
		status.Components["frontend"] = fmt.Sprintf("ok (%T)", s.app.frontend)
	}

	if s.app.store != nil {
		status.Components["history"] = "ok"
	} else if s.app.Config.DB.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	if last, ok := s.app.LastRun(); ok {
		status.Components["last_run"] = fmt.Sprintf("%s: %d unused imports at %s",
			last.MainFile, len(last.Diagnostics), last.FinishedAt.Format(time.RFC3339))
	} else {
		status.Components["last_run"] = "none"
	}

	return status
}
