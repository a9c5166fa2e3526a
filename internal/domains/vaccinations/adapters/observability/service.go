package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
)

const tracerName = "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/observability/service"

// Service decorates the workflow application port with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core workflow service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// OpenSession opens an appointment view session with instrumentation.
func (s *Service) OpenSession(ctx context.Context, input vactypes.OpenSessionInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.OpenSession", attribute.Int64("appointment.id", input.AppointmentID))
	defer span.End()

	s.logInfo(ctx, "opening workflow session", slog.Int64("appointment.id", input.AppointmentID))
	state, err := s.inner.OpenSession(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open workflow session", slog.Int64("appointment.id", input.AppointmentID))
	}
	s.metrics.recordSessionOpened(ctx, state.PersistedStage.String())
	s.logInfo(ctx, "workflow session opened",
		slog.String("session.id", state.SessionID),
		slog.String("stage", state.PersistedStage.String()))
	return state, nil
}

// GetSession returns the session projection.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSession", attribute.String("session.id", sessionID))
	defer span.End()

	state, err := s.inner.GetSession(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to read workflow session", slog.String("session.id", sessionID))
	}
	return state, nil
}

// CloseSession discards the session.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	ctx, span := s.startSpan(ctx, "Service.CloseSession", attribute.String("session.id", sessionID))
	defer span.End()

	s.logInfo(ctx, "closing workflow session", slog.String("session.id", sessionID))
	if err := s.inner.CloseSession(ctx, sessionID); err != nil {
		return s.handleError(ctx, span, err, "failed to close workflow session", slog.String("session.id", sessionID))
	}
	s.metrics.recordSessionClosed(ctx)
	return nil
}

// RefreshSession refetches and reconciles the appointment record.
func (s *Service) RefreshSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.RefreshSession", attribute.String("session.id", sessionID))
	defer span.End()

	s.logInfo(ctx, "refreshing workflow session", slog.String("session.id", sessionID))
	state, err := s.inner.RefreshSession(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to refresh workflow session", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.String("workflow.stage", state.PersistedStage.String()))
	return state, nil
}

// SetDisease records the disease choice.
func (s *Service) SetDisease(ctx context.Context, sessionID string, input vactypes.DiseaseInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetDisease",
		attribute.String("session.id", sessionID),
		attribute.Int64("disease.id", input.DiseaseID))
	defer span.End()

	state, err := s.inner.SetDisease(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set disease", slog.String("session.id", sessionID))
	}
	return state, nil
}

// SetVetSelection records the practitioner-and-slot choice.
func (s *Service) SetVetSelection(ctx context.Context, sessionID string, input vactypes.VetSelectionInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetVetSelection", attribute.String("session.id", sessionID))
	defer span.End()

	state, err := s.inner.SetVetSelection(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set vet selection", slog.String("session.id", sessionID))
	}
	return state, nil
}

// SetHealth records the check-in vitals.
func (s *Service) SetHealth(ctx context.Context, sessionID string, input vactypes.HealthInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetHealth", attribute.String("session.id", sessionID))
	defer span.End()

	state, err := s.inner.SetHealth(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set health data", slog.String("session.id", sessionID))
	}
	return state, nil
}

// SetResult records the injection outcome.
func (s *Service) SetResult(ctx context.Context, sessionID string, input vactypes.ResultInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetResult", attribute.String("session.id", sessionID))
	defer span.End()

	state, err := s.inner.SetResult(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set result data", slog.String("session.id", sessionID))
	}
	return state, nil
}

// SetVaccineBatch records the selected inventory batch.
func (s *Service) SetVaccineBatch(ctx context.Context, sessionID string, input vactypes.VaccineBatchInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetVaccineBatch",
		attribute.String("session.id", sessionID),
		attribute.Int64("vaccine.batch.id", input.VaccineBatchID))
	defer span.End()

	state, err := s.inner.SetVaccineBatch(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set vaccine batch", slog.String("session.id", sessionID))
	}
	return state, nil
}

// SetViewStage moves the review cursor.
func (s *Service) SetViewStage(ctx context.Context, sessionID string, input vactypes.ViewStageInput) (*vactypes.SessionState, error) {
	ctx, span := s.startSpan(ctx, "Service.SetViewStage", attribute.String("session.id", sessionID))
	defer span.End()

	state, err := s.inner.SetViewStage(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set view stage", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.String("workflow.effective_view", state.EffectiveView))
	return state, nil
}

// SubmitTransition advances the appointment with instrumentation.
func (s *Service) SubmitTransition(ctx context.Context, sessionID string, input vactypes.SubmitTransitionInput) (*vactypes.TransitionOutcome, error) {
	ctx, span := s.startSpan(ctx, "Service.SubmitTransition",
		attribute.String("session.id", sessionID),
		attribute.Int("workflow.target_status", input.TargetStatus))
	defer span.End()

	s.logInfo(ctx, "submitting transition",
		slog.String("session.id", sessionID),
		slog.Int("target_status", input.TargetStatus))
	outcome, err := s.inner.SubmitTransition(ctx, sessionID, input)
	if err != nil {
		s.metrics.recordTransitionFailed(ctx, input.TargetStatus)
		return nil, s.handleError(ctx, span, err, "transition failed",
			slog.String("session.id", sessionID),
			slog.Int("target_status", input.TargetStatus))
	}
	s.metrics.recordTransitionSucceeded(ctx, input.TargetStatus)
	s.logInfo(ctx, "transition succeeded",
		slog.String("session.id", sessionID),
		slog.String("stage", outcome.State.PersistedStage.String()))
	return outcome, nil
}

// RejectAppointment submits the rejection transition with instrumentation.
func (s *Service) RejectAppointment(ctx context.Context, sessionID string, input vactypes.RejectInput) (*vactypes.TransitionOutcome, error) {
	ctx, span := s.startSpan(ctx, "Service.RejectAppointment", attribute.String("session.id", sessionID))
	defer span.End()

	s.logInfo(ctx, "rejecting appointment", slog.String("session.id", sessionID))
	outcome, err := s.inner.RejectAppointment(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "rejection failed", slog.String("session.id", sessionID))
	}
	s.metrics.recordRejected(ctx)
	s.logInfo(ctx, "appointment rejected", slog.String("session.id", sessionID))
	return outcome, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	sessionsOpened       metric.Int64Counter
	sessionsClosed       metric.Int64Counter
	transitionsSucceeded metric.Int64Counter
	transitionsFailed    metric.Int64Counter
	rejections           metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	opened, _ := m.Int64Counter("workflow.sessions.opened", metric.WithDescription("Number of workflow view sessions opened"))
	closed, _ := m.Int64Counter("workflow.sessions.closed", metric.WithDescription("Number of workflow view sessions closed"))
	succeeded, _ := m.Int64Counter("workflow.transitions.succeeded", metric.WithDescription("Number of successful status transitions"))
	failed, _ := m.Int64Counter("workflow.transitions.failed", metric.WithDescription("Number of failed status transitions"))
	rejections, _ := m.Int64Counter("workflow.rejections", metric.WithDescription("Number of appointments rejected"))
	return serviceMetrics{
		sessionsOpened:       opened,
		sessionsClosed:       closed,
		transitionsSucceeded: succeeded,
		transitionsFailed:    failed,
		rejections:           rejections,
	}
}

func (m serviceMetrics) recordSessionOpened(ctx context.Context, stage string) {
	addCounter(ctx, m.sessionsOpened, 1, attribute.String("workflow.stage", stage))
}

func (m serviceMetrics) recordSessionClosed(ctx context.Context) {
	addCounter(ctx, m.sessionsClosed, 1)
}

func (m serviceMetrics) recordTransitionSucceeded(ctx context.Context, target int) {
	addCounter(ctx, m.transitionsSucceeded, 1, attribute.Int("workflow.target_status", target))
}

func (m serviceMetrics) recordTransitionFailed(ctx context.Context, target int) {
	addCounter(ctx, m.transitionsFailed, 1, attribute.Int("workflow.target_status", target))
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	addCounter(ctx, m.rejections, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
