package label

// Kind represents the type of label that can be rendered and printed
type Kind string

const (
	KindCable   Kind = "CABLE"
	KindDevice  Kind = "DEVICE"
	KindWarning Kind = "WARNING"
	KindText    Kind = "TEXT"
	KindBatch   Kind = "BATCH"
	KindCustom  Kind = "CUSTOM"
)

// IsValid checks if the Kind is a valid value
func (k Kind) IsValid() bool {
	switch k {
	case KindCable, KindDevice, KindWarning, KindText, KindBatch, KindCustom:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// AllKinds returns all valid Kind values
func AllKinds() []Kind {
	return []Kind{KindCable, KindDevice, KindWarning, KindText, KindBatch, KindCustom}
}

// JobStatus represents the lifecycle status of a print job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRendering JobStatus = "RENDERING"
	JobStatusPrinting  JobStatus = "PRINTING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRendering, JobStatusPrinting, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusRendering || target == JobStatusFailed
	case JobStatusRendering:
		return target == JobStatusPrinting || target == JobStatusFailed
	case JobStatusPrinting:
		return target == JobStatusCompleted || target == JobStatusFailed
	default:
		return false
	}
}
