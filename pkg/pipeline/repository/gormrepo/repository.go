// Package gormrepo provides a GORM-backed implementation of the
// RunRepository interface, persisting run metadata to a relational database.
package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/repository"
)

// runExecutionRecord is the persistence shape of a RunExecution.
type runExecutionRecord struct {
	ID               string `gorm:"primaryKey;size:36"`
	PipelineName     string `gorm:"index;size:255"`
	Parameters       string
	StartTime        time.Time
	EndTime          *time.Time
	Status           string `gorm:"size:32"`
	ExitStatus       string `gorm:"size:32"`
	Failures         string
	ExecutionContext model.ExecutionContext `gorm:"type:text"`
	CreateTime       time.Time
	LastUpdated      time.Time
	Version          int
}

func (runExecutionRecord) TableName() string { return "pipeline_run_executions" }

// taskExecutionRecord is the persistence shape of a TaskExecution.
type taskExecutionRecord struct {
	ID               string `gorm:"primaryKey;size:36"`
	RunExecutionID   string `gorm:"index;size:36"`
	TaskName         string `gorm:"size:255"`
	StartTime        time.Time
	EndTime          *time.Time
	Status           string `gorm:"size:32"`
	ExitStatus       string `gorm:"size:32"`
	Failures         string
	ExecutionContext model.ExecutionContext `gorm:"type:text"`
	RowsRead         int
	RowsWritten      int
	LastUpdated      time.Time
	Version          int
}

func (taskExecutionRecord) TableName() string { return "pipeline_task_executions" }

// GormRunRepository is a RunRepository backed by a GORM connection.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a repository over the given connection and
// migrates the metadata tables.
func NewGormRunRepository(db *gorm.DB) (*GormRunRepository, error) {
	if err := db.AutoMigrate(&runExecutionRecord{}, &taskExecutionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run metadata tables: %w", err)
	}
	return &GormRunRepository{db: db}, nil
}

func marshalFailures(failures []error) string {
	if len(failures) == 0 {
		return "[]"
	}
	msgs := make([]string, 0, len(failures))
	for _, err := range failures {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalFailures(data string) []error {
	var msgs []string
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		return nil
	}
	failures := make([]error, 0, len(msgs))
	for _, m := range msgs {
		failures = append(failures, errors.New(m))
	}
	return failures
}

func toRunRecord(execution *model.RunExecution) (*runExecutionRecord, error) {
	params, err := json.Marshal(execution.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run parameters: %w", err)
	}
	rec := &runExecutionRecord{
		ID:               execution.ID,
		PipelineName:     execution.PipelineName,
		Parameters:       string(params),
		StartTime:        execution.StartTime,
		Status:           string(execution.Status),
		ExitStatus:       string(execution.ExitStatus),
		Failures:         marshalFailures(execution.Failures),
		ExecutionContext: execution.ExecutionContext,
		CreateTime:       execution.CreateTime,
		LastUpdated:      execution.LastUpdated,
		Version:          execution.Version,
	}
	if !execution.EndTime.IsZero() {
		end := execution.EndTime
		rec.EndTime = &end
	}
	return rec, nil
}

func fromRunRecord(rec *runExecutionRecord) (*model.RunExecution, error) {
	var params map[string]interface{}
	if rec.Parameters != "" {
		if err := json.Unmarshal([]byte(rec.Parameters), &params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run parameters: %w", err)
		}
	}
	execution := &model.RunExecution{
		ID:               rec.ID,
		PipelineName:     rec.PipelineName,
		Parameters:       params,
		StartTime:        rec.StartTime,
		Status:           model.Status(rec.Status),
		ExitStatus:       model.ExitStatus(rec.ExitStatus),
		Failures:         unmarshalFailures(rec.Failures),
		ExecutionContext: rec.ExecutionContext,
		CreateTime:       rec.CreateTime,
		LastUpdated:      rec.LastUpdated,
		Version:          rec.Version,
	}
	if rec.EndTime != nil {
		execution.EndTime = *rec.EndTime
	}
	if execution.ExecutionContext == nil {
		execution.ExecutionContext = model.NewExecutionContext()
	}
	return execution, nil
}

func toTaskRecord(execution *model.TaskExecution) *taskExecutionRecord {
	rec := &taskExecutionRecord{
		ID:               execution.ID,
		TaskName:         execution.TaskName,
		StartTime:        execution.StartTime,
		Status:           string(execution.Status),
		ExitStatus:       string(execution.ExitStatus),
		Failures:         marshalFailures(execution.Failures),
		ExecutionContext: execution.ExecutionContext,
		RowsRead:         execution.RowsRead,
		RowsWritten:      execution.RowsWritten,
		LastUpdated:      execution.LastUpdated,
		Version:          execution.Version,
	}
	if execution.RunExecution != nil {
		rec.RunExecutionID = execution.RunExecution.ID
	}
	if !execution.EndTime.IsZero() {
		end := execution.EndTime
		rec.EndTime = &end
	}
	return rec
}

// SaveRunExecution persists a new RunExecution.
func (r *GormRunRepository) SaveRunExecution(ctx context.Context, execution *model.RunExecution) error {
	rec, err := toRunRecord(execution)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save run execution '%s': %w", execution.ID, err)
	}
	return nil
}

// UpdateRunExecution persists changes to an existing RunExecution.
func (r *GormRunRepository) UpdateRunExecution(ctx context.Context, execution *model.RunExecution) error {
	rec, err := toRunRecord(execution)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&runExecutionRecord{}).Where("id = ?", rec.ID).Updates(rec)
	if result.Error != nil {
		return fmt.Errorf("failed to update run execution '%s': %w", execution.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("run execution with ID '%s' not found", execution.ID)
	}
	return nil
}

// FindRunExecutionByID retrieves a RunExecution with its task executions.
func (r *GormRunRepository) FindRunExecutionByID(ctx context.Context, id string) (*model.RunExecution, error) {
	var rec runExecutionRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run execution with ID '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to find run execution '%s': %w", id, err)
	}

	execution, err := fromRunRecord(&rec)
	if err != nil {
		return nil, err
	}

	var taskRecs []taskExecutionRecord
	if err := r.db.WithContext(ctx).
		Where("run_execution_id = ?", id).
		Order("start_time").
		Find(&taskRecs).Error; err != nil {
		return nil, fmt.Errorf("failed to load task executions for run '%s': %w", id, err)
	}
	for i := range taskRecs {
		te := fromTaskRecord(&taskRecs[i])
		te.RunExecution = execution
		execution.TaskExecutions = append(execution.TaskExecutions, te)
	}
	return execution, nil
}

func fromTaskRecord(rec *taskExecutionRecord) *model.TaskExecution {
	te := &model.TaskExecution{
		ID:               rec.ID,
		TaskName:         rec.TaskName,
		StartTime:        rec.StartTime,
		Status:           model.Status(rec.Status),
		ExitStatus:       model.ExitStatus(rec.ExitStatus),
		Failures:         unmarshalFailures(rec.Failures),
		ExecutionContext: rec.ExecutionContext,
		RowsRead:         rec.RowsRead,
		RowsWritten:      rec.RowsWritten,
		LastUpdated:      rec.LastUpdated,
		Version:          rec.Version,
	}
	if rec.EndTime != nil {
		te.EndTime = *rec.EndTime
	}
	if te.ExecutionContext == nil {
		te.ExecutionContext = model.NewExecutionContext()
	}
	return te
}

// FindLatestRunExecution retrieves the most recently started run of the
// named pipeline, or nil when none exists.
func (r *GormRunRepository) FindLatestRunExecution(ctx context.Context, pipelineName string) (*model.RunExecution, error) {
	var rec runExecutionRecord
	err := r.db.WithContext(ctx).
		Where("pipeline_name = ?", pipelineName).
		Order("start_time DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest run of '%s': %w", pipelineName, err)
	}
	return r.FindRunExecutionByID(ctx, rec.ID)
}

// SaveTaskExecution persists a new TaskExecution.
func (r *GormRunRepository) SaveTaskExecution(ctx context.Context, execution *model.TaskExecution) error {
	if err := r.db.WithContext(ctx).Create(toTaskRecord(execution)).Error; err != nil {
		return fmt.Errorf("failed to save task execution '%s': %w", execution.ID, err)
	}
	return nil
}

// UpdateTaskExecution persists changes to an existing TaskExecution.
func (r *GormRunRepository) UpdateTaskExecution(ctx context.Context, execution *model.TaskExecution) error {
	rec := toTaskRecord(execution)
	result := r.db.WithContext(ctx).Model(&taskExecutionRecord{}).Where("id = ?", rec.ID).Updates(rec)
	if result.Error != nil {
		return fmt.Errorf("failed to update task execution '%s': %w", execution.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task execution with ID '%s' not found", execution.ID)
	}
	return nil
}

// Close closes the underlying database connection.
func (r *GormRunRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.RunRepository = (*GormRunRepository)(nil)
