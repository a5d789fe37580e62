package mediator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrHandlerNotFound is returned by Send when no handler is registered for the request type.
	ErrHandlerNotFound = errors.New("mediator: handler not found")
	// ErrDuplicateHandler is returned by Register when the request type already has a handler.
	ErrDuplicateHandler = errors.New("mediator: handler already registered")
	// ErrSealed is returned by Register after Build has been called.
	ErrSealed = errors.New("mediator: registry is sealed")
	// ErrResponseType is returned by Send when the handler result does not match the requested type.
	ErrResponseType = errors.New("mediator: unexpected response type")
)

// Handler performs the operation a request of type Req describes.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Handle calls f(ctx, req).
func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

type entry struct {
	name       string
	validators int
	dispatch   func(ctx context.Context, req any) (any, error)
}

// Option configures a Builder.
type Option func(*Builder)

// WithInstrument sets the instrumentation used to trace dispatched requests.
func WithInstrument(ins instrument.Instrumentation) Option {
	return func(b *Builder) {
		if ins != nil {
			b.ins = ins
		}
	}
}

// Builder collects handler registrations before the registry is sealed.
type Builder struct {
	entries map[reflect.Type]entry
	ins     instrument.Instrumentation
	sealed  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		entries: make(map[reflect.Type]entry),
		ins:     instrument.NewNoop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Register binds the handler and validators to the request type Req.
//
// Each request type has exactly one handler. The validators slice is copied.
func Register[Req, Resp any](b *Builder, h Handler[Req, Resp], validators ...Validator[Req]) error {
	if b.sealed {
		return ErrSealed
	}

	t := reflect.TypeFor[Req]()
	if _, exists := b.entries[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t)
	}

	vs := slices.Clone(validators)
	b.entries[t] = entry{
		name:       t.Name(),
		validators: len(vs),
		dispatch: func(ctx context.Context, raw any) (any, error) {
			req, _ := raw.(Req) //nolint:errcheck // keyed by reflect.TypeFor[Req]
			return Validate(ctx, req, vs, func(ctx context.Context) (any, error) {
				resp, err := h.Handle(ctx, req)
				if err != nil {
					return nil, err
				}
				return resp, nil
			})
		},
	}

	return nil
}

// Build seals the builder and returns the read-only Mediator.
func (b *Builder) Build() *Mediator {
	b.sealed = true

	return &Mediator{
		entries: maps.Clone(b.entries),
		tracer:  b.ins.Tracer("mediator"),
	}
}

// Mediator dispatches requests to their registered handler.
//
// It is safe for concurrent use; the registry never changes after Build.
type Mediator struct {
	entries map[reflect.Type]entry
	tracer  trace.Tracer
}

// Send validates req and forwards it to its handler, returning the handler
// result as Resp.
func Send[Resp any](ctx context.Context, m *Mediator, req any) (Resp, error) {
	var zero Resp

	if req == nil {
		return zero, ErrHandlerNotFound
	}

	t := reflect.TypeOf(req)
	e, ok := m.entries[t]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrHandlerNotFound, t)
	}

	ctx, span := m.tracer.Start(ctx, "mediator.Send "+e.name, trace.WithAttributes(
		attribute.String("mediator.request", e.name),
		attribute.Int("mediator.validators", e.validators),
	))
	defer span.End()

	start := time.Now()
	out, err := e.dispatch(ctx, req)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		slog.InfoContext(ctx, "request handler finished with error", "request", e.name, "elapsed_ms", elapsed, "error", err)
		return zero, err
	}

	slog.InfoContext(ctx, "request handler execution finished", "request", e.name, "elapsed_ms", elapsed)

	if out == nil {
		return zero, nil
	}

	resp, ok := out.(Resp)
	if !ok {
		return zero, fmt.Errorf("%w: %s returned %T", ErrResponseType, e.name, out)
	}

	return resp, nil
}
