package api

import (
	"github.com/lealre/carsdb-backend/internal/config"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/mongodb"
)

type API struct {
	Db      *mongodb.DB
	JWT     config.JWTConfig
	Metrics *metrics.Metrics
}

func NewAPI(db *mongodb.DB, jwtCfg config.JWTConfig, m *metrics.Metrics) *API {
	return &API{Db: db, JWT: jwtCfg, Metrics: m}
}

// PublicPaths are served without a bearer token, keyed by "METHOD /path".
var PublicPaths = map[string]bool{
	"POST /signup": true,
	"POST /signin": true,
	"GET /healthz": true,
	"GET /metrics": true,
}
