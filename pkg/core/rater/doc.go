// Package rater scores partitions of a sheet graph. Lower scores are better.
//
// A [FitnessRater] combines handcrafted structural metrics linearly. Nine
// metrics are evaluated per connected component and summed over all
// components; one metric is evaluated once for the whole partition. The
// weight vector holds one weight per metric in registry order, component
// metrics first.
//
// Metrics fall back to 0, the best possible score, whenever their natural
// denominator is empty: no data or header columns, no data or header
// regions, no empty columns or rows, no components.
//
// Scores are cached per (sheet, member set, metric). Search strategies rate
// thousands of candidates that share most of their components, and the
// header grouping and empty-run scans dominate the cost of a rating.
//
// A rater is not safe for concurrent use; use one rater per goroutine.
package rater
