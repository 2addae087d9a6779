package operations

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "fleetcli.operation"

// Manager runs the pipeline stages in order, recording per-stage state
// and aborting on the first failure.
type Manager struct {
	logger *slog.Logger
	tracer trace.Tracer
	stages []Stage
}

// NewManager creates a pipeline manager over an ordered stage list.
func NewManager(logger *slog.Logger, stages []Stage) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger: logger,
		tracer: otel.Tracer(TracerName),
		stages: stages,
	}
}

// Run executes every stage sequentially. The returned state carries the
// pipeline data and per-stage outcomes even when an error is returned.
func (m *Manager) Run(ctx context.Context) (*OperationState, error) {
	state := NewOperationState(uuid.New().String())
	state.Start()

	ctx, span := m.tracer.Start(ctx, "operation.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.Int("operation.stages", len(m.stages)),
		),
	)
	defer span.End()

	m.logger.InfoContext(ctx, "pipeline run started",
		slog.String("operation_id", state.ID),
		slog.Int("stages", len(m.stages)))

	for _, stage := range m.stages {
		if err := m.runStage(ctx, stage, state); err != nil {
			state.Fail(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			m.logger.ErrorContext(ctx, "pipeline run failed",
				slog.String("operation_id", state.ID),
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			return state, err
		}
	}

	state.Complete()
	span.SetStatus(codes.Ok, "")
	m.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("operation_id", state.ID),
		slog.Duration("duration", state.Duration()))

	return state, nil
}

func (m *Manager) runStage(ctx context.Context, stage Stage, state *OperationState) error {
	stageState := NewStageState(stage.ID(), stage.Name())
	state.SetStage(stageState)

	if err := stage.Validate(state); err != nil {
		stageState.Fail(err)
		return err
	}

	ctx, span := m.tracer.Start(ctx, "operation.stage."+stage.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.String("stage.id", stage.ID()),
		),
	)
	defer span.End()

	stageState.Start()
	m.logger.InfoContext(ctx, "stage started",
		slog.String("operation_id", state.ID),
		slog.String("stage", stage.ID()),
		slog.String("name", stage.Name()))

	if err := stage.Execute(ctx, state); err != nil {
		stageState.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	stageState.Complete()
	span.SetStatus(codes.Ok, "")
	m.logger.InfoContext(ctx, "stage completed",
		slog.String("operation_id", state.ID),
		slog.String("stage", stage.ID()),
		slog.Duration("duration", stageState.Duration()))

	return nil
}
