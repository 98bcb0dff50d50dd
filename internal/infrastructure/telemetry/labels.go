package telemetry

import (
	"context"
	"sort"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	LabelRoute    = "route"
	LabelMethod   = "method"
	LabelTenantID = "tenant_id"
)

const maxLabelLength = 128

// WithLabels runs fn with pprof labels attached so profiles can be sliced by
// route and tenant. Empty values are dropped and long ones truncated.
func WithLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := labelPairs(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

func labelPairs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		if k != "" && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := labels[k]
		if len(v) > maxLabelLength {
			v = v[:maxLabelLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
