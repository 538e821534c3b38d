package monitoring

// DispatchDurationBuckets defines latency buckets for webhook dispatch metrics.
var DispatchDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15}

// PayloadSizeBuckets defines size buckets for rendered card payload metrics.
var PayloadSizeBuckets = []float64{100, 1_000, 10_000, 100_000, 1_000_000}
