package domain

// StepStatus is the outcome of one build step.
type StepStatus string

const (
	// StepCompleted indicates the step ran and succeeded.
	StepCompleted StepStatus = "completed"
	// StepCached indicates the step was skipped because its artifact was up to date.
	StepCached StepStatus = "cached"
	// StepSkipped indicates the step does not apply to the target, e.g. run on a library.
	StepSkipped StepStatus = "skipped"
)

// StepKind names the kind of work a step performs.
type StepKind string

const (
	// StepCompile compiles one source file.
	StepCompile StepKind = "compile"
	// StepLink links or archives the target.
	StepLink StepKind = "link"
	// StepDependency builds a stale dependency.
	StepDependency StepKind = "dependency"
)

// Step records what happened to one unit of work.
type Step struct {
	Kind   StepKind
	Name   string
	Status StepStatus
}

// BuildReport summarizes a successful build of one project.
type BuildReport struct {
	// Target is the path of the produced artifact, relative to the project root.
	Target string
	Steps  []Step
}

// Compiled returns the sources that were compiled during the build.
func (r *BuildReport) Compiled() []string {
	return r.names(StepCompile, StepCompleted)
}

// Linked reports whether the target was linked or archived.
func (r *BuildReport) Linked() bool {
	return len(r.names(StepLink, StepCompleted)) > 0
}

func (r *BuildReport) names(kind StepKind, status StepStatus) []string {
	var out []string
	for _, s := range r.Steps {
		if s.Kind == kind && s.Status == status {
			out = append(out, s.Name)
		}
	}
	return out
}

// StepCounts tallies the steps recorded by a telemetry session.
type StepCounts struct {
	Total  int
	Cached int
	Failed int
}

// Since returns the steps recorded after prev was taken.
func (c StepCounts) Since(prev StepCounts) StepCounts {
	return StepCounts{
		Total:  c.Total - prev.Total,
		Cached: c.Cached - prev.Cached,
		Failed: c.Failed - prev.Failed,
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
