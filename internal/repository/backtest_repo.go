package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"algo-backtest/internal/dto"
	"algo-backtest/internal/model"

	"gorm.io/gorm"
)

// BacktestRepository is the persistence sink for completed runs, keyed by
// run ID.
type BacktestRepository interface {
	Save(ctx context.Context, results *dto.BacktestResults) error
	GetByID(ctx context.Context, id string) (*dto.BacktestResults, error)
	ListRecent(ctx context.Context, limit int) ([]dto.BacktestSummary, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type backtestRepository struct {
	db *gorm.DB
}

func NewBacktestRepository(db *gorm.DB) BacktestRepository {
	return &backtestRepository{db: db}
}

func (r *backtestRepository) Save(ctx context.Context, results *dto.BacktestResults) error {
	record, err := toRecord(results)
	if err != nil {
		return fmt.Errorf("failed to serialize backtest results: %w", err)
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *backtestRepository) GetByID(ctx context.Context, id string) (*dto.BacktestResults, error) {
	var record model.BacktestResult
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not an error, just no data
		}
		return nil, err
	}
	return fromRecord(&record)
}

func (r *backtestRepository) ListRecent(ctx context.Context, limit int) ([]dto.BacktestSummary, error) {
	var records []model.BacktestResult
	err := r.db.WithContext(ctx).
		Select("id", "symbol", "asset_class", "timeframe", "start_date", "end_date", "status", "total_return", "sharpe_ratio", "total_trades", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.BacktestSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, dto.BacktestSummary{
			BacktestID:  record.ID,
			Symbol:      record.Symbol,
			AssetClass:  record.AssetClass,
			Timeframe:   record.Timeframe,
			StartDate:   record.StartDate,
			EndDate:     record.EndDate,
			Status:      record.Status,
			TotalReturn: record.TotalReturn,
			SharpeRatio: record.SharpeRatio,
			TotalTrades: record.TotalTrades,
			CreatedAt:   record.CreatedAt,
		})
	}
	return summaries, nil
}

func (r *backtestRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BacktestResult{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func toRecord(results *dto.BacktestResults) (*model.BacktestResult, error) {
	configJSON, err := json.Marshal(results.Config)
	if err != nil {
		return nil, err
	}
	tradesJSON, err := json.Marshal(results.Trades)
	if err != nil {
		return nil, err
	}
	curveJSON, err := json.Marshal(results.EquityCurve)
	if err != nil {
		return nil, err
	}

	record := &model.BacktestResult{
		ID:              results.BacktestID,
		Symbol:          results.Config.Symbol,
		AssetClass:      results.Config.AssetClass,
		Timeframe:       results.Config.Timeframe,
		StartDate:       results.Config.StartDate,
		EndDate:         results.Config.EndDate,
		Status:          results.Status,
		Config:          configJSON,
		Trades:          tradesJSON,
		EquityCurve:     curveJSON,
		ErrorMessage:    results.ErrorMessage,
		StartedAt:       results.StartedAt,
		CompletedAt:     results.CompletedAt,
		ExecutionTimeMS: results.ExecutionTimeMS,
	}

	if results.Metrics != nil {
		metricsJSON, err := json.Marshal(results.Metrics)
		if err != nil {
			return nil, err
		}
		record.Metrics = metricsJSON
		record.TotalReturn = results.Metrics.TotalReturn
		record.SharpeRatio = results.Metrics.SharpeRatio
		record.TotalTrades = results.Metrics.TotalTrades
	}
	if results.Metadata != nil {
		metadataJSON, err := json.Marshal(results.Metadata)
		if err != nil {
			return nil, err
		}
		record.Metadata = metadataJSON
	}
	return record, nil
}

func fromRecord(record *model.BacktestResult) (*dto.BacktestResults, error) {
	results := &dto.BacktestResults{
		BacktestID:      record.ID,
		Status:          record.Status,
		ErrorMessage:    record.ErrorMessage,
		StartedAt:       record.StartedAt,
		CompletedAt:     record.CompletedAt,
		ExecutionTimeMS: record.ExecutionTimeMS,
	}

	if err := json.Unmarshal(record.Config, &results.Config); err != nil {
		return nil, fmt.Errorf("failed to deserialize backtest config: %w", err)
	}
	if len(record.Trades) > 0 {
		if err := json.Unmarshal(record.Trades, &results.Trades); err != nil {
			return nil, fmt.Errorf("failed to deserialize trades: %w", err)
		}
	}
	if len(record.EquityCurve) > 0 {
		if err := json.Unmarshal(record.EquityCurve, &results.EquityCurve); err != nil {
			return nil, fmt.Errorf("failed to deserialize equity curve: %w", err)
		}
	}
	if len(record.Metrics) > 0 {
		var metrics dto.BacktestMetrics
		if err := json.Unmarshal(record.Metrics, &metrics); err != nil {
			return nil, fmt.Errorf("failed to deserialize metrics: %w", err)
		}
		results.Metrics = &metrics
	}
	if len(record.Metadata) > 0 {
		if err := json.Unmarshal(record.Metadata, &results.Metadata); err != nil {
			return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
		}
	}
	return results, nil
}
