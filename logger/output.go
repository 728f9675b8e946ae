package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: generated files, errors with hints, final status
//	1 (-v)      - + Progress, model summary, per-artifact info
//	2 (-vv)     - + Timing, config values, model statistics
//	3 (-vvv)    - + Per-definition compile flow, placement decisions
//	4 (-vvvv)   - + Full rendered unit dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Generated file paths, check verdicts
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress      // Progress indicators (e.g., watch-mode rebuild notices)
	OutputStartup       // Model loaded banners, version summary
	OutputOperationInfo // High-level per-artifact summaries

	// Level 2 (-vv) - Detailed
	OutputTiming     // Operation timing (e.g., "compile took 42ms")
	OutputConfig     // Config values loaded/applied
	OutputModelStats // Counts of structures, enums, aliases, messages

	// Level 3 (-vvv) - Debug
	OutputCompileSteps // Per-definition compilation flow
	OutputOrdering     // Definition placement and forward-reference decisions

	// Level 4 (-vvvv) - Full dump
	OutputDataDump // Full rendered unit contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputProgress:      VerbosityInfo,
	OutputStartup:       VerbosityInfo,
	OutputOperationInfo: VerbosityInfo,

	// Level 2 - Detailed
	OutputTiming:     VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputModelStats: VerbosityDebug,

	// Level 3 - Debug
	OutputCompileSteps: VerbosityTrace,
	OutputOrdering:     VerbosityTrace,

	// Level 4 - Full dump
	OutputDataDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputUserStatus:    "status",
	OutputProgress:      "progress",
	OutputStartup:       "startup",
	OutputOperationInfo: "operation-info",
	OutputTiming:        "timing",
	OutputConfig:        "config",
	OutputModelStats:    "model-stats",
	OutputCompileSteps:  "compile-steps",
	OutputOrdering:      "ordering",
	OutputDataDump:      "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and status"
	case VerbosityDebug:
		return "above + timing, config, model statistics"
	case VerbosityTrace:
		return "above + compile flow and ordering decisions"
	case VerbosityAll:
		return "full output including rendered unit dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
