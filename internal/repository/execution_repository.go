package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stanstork/execdash/internal/models"
)

// ExecutionRepository reads the executions table written by the capture hook.
// An empty instance means no instance constraint.
type ExecutionRepository interface {
	ListInstances(ctx context.Context) ([]string, error)
	ListExecutions(ctx context.Context, instance string, limit int) ([]models.ExecutionRecord, error)
	ListStatusGroups(ctx context.Context, instance string) ([]models.StatusGroup, error)
	ListStartedSince(ctx context.Context, instance string, since time.Time) ([]models.ExecutionRecord, error)
	ListWorkflowGroups(ctx context.Context, instance string) ([]models.StatusGroup, error)
}

type executionRepository struct {
	db *sql.DB
}

func NewExecutionRepository(db *sql.DB) ExecutionRepository {
	return &executionRepository{db: db}
}

// instanceClause appends the optional instance predicate to a query. Callers pass
// the connective ("WHERE" or "AND") that fits the query built so far.
func instanceClause(query, connective, instance string, args []interface{}) (string, []interface{}) {
	if instance == "" {
		return query, args
	}
	args = append(args, instance)
	return fmt.Sprintf("%s %s instance_id = $%d", query, connective, len(args)), args
}

func (r *executionRepository) ListInstances(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT instance_id
		FROM executions
		WHERE instance_id IS NOT NULL
		ORDER BY instance_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListInstances query error: %w", err)
	}
	defer rows.Close()

	instances := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		instances = append(instances, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *executionRepository) ListExecutions(ctx context.Context, instance string, limit int) ([]models.ExecutionRecord, error) {
	query := `
		SELECT
			id,
			instance_id,
			workflow_id,
			workflow_name,
			status,
			finished,
			started_at,
			finished_at,
			duration_ms,
			mode,
			node_count,
			error_message,
			created_at
		FROM executions`
	query, args := instanceClause(query, "WHERE", instance, nil)
	args = append(args, limit)
	query = fmt.Sprintf("%s ORDER BY created_at DESC LIMIT $%d", query, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListExecutions query error: %w", err)
	}
	defer rows.Close()

	executions := make([]models.ExecutionRecord, 0, limit)
	for rows.Next() {
		var (
			e            models.ExecutionRecord
			instanceID   sql.NullString
			startedAt    sql.NullTime
			finishedAt   sql.NullTime
			durationMs   sql.NullInt64
			mode         sql.NullString
			nodeCount    sql.NullInt32
			errorMessage sql.NullString
		)
		if err := rows.Scan(
			&e.ID,
			&instanceID,
			&e.WorkflowID,
			&e.WorkflowName,
			&e.Status,
			&e.Finished,
			&startedAt,
			&finishedAt,
			&durationMs,
			&mode,
			&nodeCount,
			&errorMessage,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		if instanceID.Valid {
			e.InstanceID = &instanceID.String
		}
		if startedAt.Valid {
			e.StartedAt = &startedAt.Time
		}
		if finishedAt.Valid {
			e.FinishedAt = &finishedAt.Time
		}
		if durationMs.Valid {
			e.DurationMs = &durationMs.Int64
		}
		if mode.Valid {
			e.Mode = &mode.String
		}
		if nodeCount.Valid {
			n := int(nodeCount.Int32)
			e.NodeCount = &n
		}
		if errorMessage.Valid {
			e.ErrorMessage = &errorMessage.String
		}

		executions = append(executions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return executions, nil
}

// ListStatusGroups counts executions per status, with the duration sum and the
// number of executions that recorded a duration.
func (r *executionRepository) ListStatusGroups(ctx context.Context, instance string) ([]models.StatusGroup, error) {
	query, args := instanceClause(`
		SELECT
			status,
			COUNT(*) AS total,
			COALESCE(SUM(duration_ms), 0) AS duration_sum,
			COUNT(duration_ms) AS measured
		FROM executions`, "WHERE", instance, nil)
	query += " GROUP BY status ORDER BY status"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListStatusGroups query error: %w", err)
	}
	defer rows.Close()

	groups := []models.StatusGroup{}
	for rows.Next() {
		var g models.StatusGroup
		if err := rows.Scan(&g.Status, &g.Count, &g.DurationSumMs, &g.DurationCount); err != nil {
			return nil, fmt.Errorf("failed to scan status group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *executionRepository) ListStartedSince(ctx context.Context, instance string, since time.Time) ([]models.ExecutionRecord, error) {
	query, args := instanceClause(`SELECT status, started_at FROM executions WHERE started_at >= $1`, "AND", instance, []interface{}{since})
	query += " ORDER BY started_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListStartedSince query error: %w", err)
	}
	defer rows.Close()

	var records []models.ExecutionRecord
	for rows.Next() {
		var (
			e         models.ExecutionRecord
			startedAt time.Time
		)
		if err := rows.Scan(&e.Status, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily execution: %w", err)
		}
		e.StartedAt = &startedAt
		records = append(records, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListWorkflowGroups is ListStatusGroups split by workflow name.
func (r *executionRepository) ListWorkflowGroups(ctx context.Context, instance string) ([]models.StatusGroup, error) {
	query, args := instanceClause(`
		SELECT
			workflow_name,
			status,
			COUNT(*) AS total,
			COALESCE(SUM(duration_ms), 0) AS duration_sum,
			COUNT(duration_ms) AS measured
		FROM executions`, "WHERE", instance, nil)
	query += " GROUP BY workflow_name, status ORDER BY workflow_name, status"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListWorkflowGroups query error: %w", err)
	}
	defer rows.Close()

	groups := []models.StatusGroup{}
	for rows.Next() {
		var g models.StatusGroup
		if err := rows.Scan(&g.WorkflowName, &g.Status, &g.Count, &g.DurationSumMs, &g.DurationCount); err != nil {
			return nil, fmt.Errorf("failed to scan workflow group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}
