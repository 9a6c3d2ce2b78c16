// Package spikes detects abnormal upward spikes in per-entity media mention
// volumes against a trailing rolling baseline.
//
// Each observation carries its own baseline: the mean and sample standard
// deviation of the mention counts over a fixed-size window ending the day
// BEFORE the observation, so a day never contributes to its own baseline.
// Points without a full baseline are skipped; a perfectly flat baseline
// (zero standard deviation) is defined to be non-alerting. Only standardized
// deviations of at least 2.0 are reported, tiered MEDIUM / HIGH / CRITICAL.
//
// The detector is per-point and order-independent; batches may be processed
// in any order, including concurrently by the caller.
package spikes
