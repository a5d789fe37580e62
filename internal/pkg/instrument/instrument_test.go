package instrument

import (
	"context"
	"testing"
)

func TestNew_DisabledReturnsNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config", cfg: nil},
		{name: "disabled", cfg: &Config{ServiceName: "userbite", LogLevel: "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := New(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := ins.(*noopInstrumentation); !ok {
				t.Fatalf("expected noop instrumentation, got %T", ins)
			}

			_, span := ins.Tracer("test").Start(context.Background(), "op")
			span.End()
			if span.SpanContext().IsValid() {
				t.Fatal("noop tracer must not record spans")
			}
			if err := ins.Shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestClampRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -1, want: 0},
		{in: 0.25, want: 0.25},
		{in: 3, want: 1},
	}

	for _, tt := range tests {
		if got := clampRatio(tt.in); got != tt.want {
			t.Fatalf("clampRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
