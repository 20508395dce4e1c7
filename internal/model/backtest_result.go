package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestResult is the persisted form of a completed backtest run. The full
// trade list, equity curve, config and metrics are stored as JSONB blobs;
// the headline columns are indexed for history listing.
type BacktestResult struct {
	ID              string         `gorm:"primarykey;type:uuid"`
	Symbol          string         `gorm:"not null;index"`
	AssetClass      string         `gorm:"not null"`
	Timeframe       string         `gorm:"not null"`
	StartDate       string         `gorm:"not null"`
	EndDate         string         `gorm:"not null"`
	Status          string         `gorm:"not null"`
	TotalReturn     float64        `gorm:"not null"`
	SharpeRatio     float64        `gorm:"not null"`
	TotalTrades     int            `gorm:"not null"`
	Config          datatypes.JSON `gorm:"type:jsonb"`
	Trades          datatypes.JSON `gorm:"type:jsonb"`
	EquityCurve     datatypes.JSON `gorm:"type:jsonb"`
	Metrics         datatypes.JSON `gorm:"type:jsonb"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`
	ErrorMessage    string
	StartedAt       time.Time `gorm:"not null"`
	CompletedAt     time.Time `gorm:"not null"`
	ExecutionTimeMS int64     `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

func (BacktestResult) TableName() string {
	return "backtest_results"
}
