// Package constants provides shared constants for the hysteresis analysis
// application. The tolerances and window sizes encode domain calibration for
// cyclic structural test data; changing them changes analysis results.
package constants

// Preprocessing dead-bands.
const (
	// MinDisplacementThreshold is the floor for the displacement dead-band.
	MinDisplacementThreshold = 0.001

	// MinForceThreshold is the floor for the force dead-band.
	MinForceThreshold = 0.01

	// ThresholdRangeFraction scales a channel's absolute-value range into
	// its dead-band.
	ThresholdRangeFraction = 0.001

	// DedupToleranceFraction scales the displacement dead-band into the
	// grouping tolerance for same-displacement deduplication.
	DedupToleranceFraction = 0.5

	// LoadingStartFactor marks the first sample considered real loading:
	// either channel exceeding LoadingStartFactor times its dead-band.
	LoadingStartFactor = 2.0
)

// First-loop cycle filter.
const (
	// CycleGroupTolerance groups displacement peaks whose amplitudes lie
	// within 8% of the first peak of the group.
	CycleGroupTolerance = 0.08

	// FilterWindowHalfWidth is the number of samples kept on each side of
	// the first peak of a displacement level.
	FilterWindowHalfWidth = 50
)

// Loop segmentation.
const (
	// MinLoopSamples is the smallest loop worth keeping.
	MinLoopSamples = 3
)

// Skeleton extraction.
const (
	// MinEnvelopeThreshold is the floor for the envelope dead-bands.
	MinEnvelopeThreshold = 0.01

	// EnvelopeDispFraction scales max displacement into the envelope
	// displacement dead-band.
	EnvelopeDispFraction = 0.005

	// EnvelopeForceFraction scales max force into the envelope force
	// dead-band.
	EnvelopeForceFraction = 0.01

	// EnvelopeMargin is the fraction of the dead-band a sample must exceed
	// the running extreme by to join the envelope.
	EnvelopeMargin = 0.1

	// PeakDeadBandFraction scales max displacement into the peak-point
	// dead-band.
	PeakDeadBandFraction = 0.01
)

// Curve smoothing.
const (
	// MinSmoothingPoints is the minimum number of usable points for any
	// smoothing algorithm.
	MinSmoothingPoints = 4

	// DefaultInterpolationPoints is the default resample grid size.
	DefaultInterpolationPoints = 300

	// MinSavGolWindow is the smallest Savitzky-Golay window length.
	MinSavGolWindow = 3

	// MaxSavGolOrder is the largest Savitzky-Golay polynomial order.
	MaxSavGolOrder = 3
)

// Output format constants.
const (
	// OutputFormatPretty is the human-readable output format.
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format.
	OutputFormatCSV = "csv"

	// ReportDecimals is the fixed number of decimals in reports.
	ReportDecimals = 4
)
