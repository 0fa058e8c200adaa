package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTimingCollector_Report(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("session")
	load := root.Child("load ledger")
	load.End()
	recompute := root.Child("recompute")
	recompute.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)
	out := buf.String()

	assert.Contains(t, out, "session:")
	assert.Contains(t, out, "├─ load ledger:")
	assert.Contains(t, out, "└─ recompute:")
}

func TestTimingCollector_NestedChildren(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("session")
	outer := root.Child("save ledger")
	inner := outer.Child("write transactions")
	inner.End()
	outer.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)
	out := buf.String()

	assert.Contains(t, out, "└─ save ledger:")
	assert.Contains(t, out, "   └─ write transactions:")
}

func TestTimingCollector_StartNestsUnderCurrent(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("root")
	nested := collector.Start("nested")
	nested.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)

	assert.Contains(t, buf.String(), "└─ nested:")
}

func TestTimingCollector_EmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf strings.Builder
	collector.Report(&buf)

	assert.Equal(t, "", buf.String())
}

func TestFromContext_NoCollector(t *testing.T) {
	collector := FromContext(context.Background())

	// Must be safe to use without a collector installed.
	timer := collector.Start("noop")
	timer.Child("child").End()
	timer.End()

	var buf strings.Builder
	collector.Report(&buf)
	assert.Equal(t, "", buf.String())
}

func TestStartTimer_UsesRootTimer(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	root := collector.Start("command")
	ctx = WithRootTimer(ctx, root)

	timer := StartTimer(ctx, "operation")
	timer.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)

	assert.Contains(t, buf.String(), "command:")
	assert.Contains(t, buf.String(), "└─ operation:")
}

func TestStartTimer_WithoutCollector(t *testing.T) {
	timer := StartTimer(context.Background(), "operation")
	timer.End()
}
