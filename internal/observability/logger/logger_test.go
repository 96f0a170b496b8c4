package logger

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	obscontext "github.com/billfold/billfold/internal/observability/context"
)

func captureGlobal(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	previous := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })
	return logs
}

func TestFromContextCarriesRequestAndOwner(t *testing.T) {
	logs := captureGlobal(t)

	ctx := obscontext.WithRequestID(context.Background(), "req-0001")
	ctx = obscontext.WithOwnerID(ctx, "42")
	FromContext(ctx).Info("export finished")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-0001" {
		t.Fatalf("request_id = %v", fields["request_id"])
	}
	if fields["owner_id"] != "42" {
		t.Fatalf("owner_id = %v", fields["owner_id"])
	}
}

func TestFromContextCarriesActiveTrace(t *testing.T) {
	logs := captureGlobal(t)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	FromContext(ctx).Info("preview rendered")

	fields := logs.All()[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("trace_id = %v", fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("span_id = %v", fields["span_id"])
	}
}

func TestFromContextWithoutEnrichmentIsGlobal(t *testing.T) {
	logs := captureGlobal(t)

	FromContext(context.Background()).Info("plain")
	if fields := logs.All()[0].ContextMap(); len(fields) != 0 {
		t.Fatalf("expected no context fields, got %v", fields)
	}
}
