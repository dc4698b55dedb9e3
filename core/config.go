package core

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config reservoir config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Sentinel    Sentinel    `json:"sentinel"`
	Admins      []string    `json:"admins"`
}

// App app config
type App struct {
	Genesis  int64  `json:"genesis"`
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	Provider string `json:"provider"`
	// MaxAge seconds a stored price stays usable
	MaxAge int64 `json:"max_age"`
	// MaxDeviation largest accepted move against the previous price, as a fraction
	MaxDeviation decimal.Decimal `json:"max_deviation"`
}

// Sentinel solvency scan config
type Sentinel struct {
	// Capacity concurrent position evaluations
	Capacity int64 `json:"capacity"`
}
