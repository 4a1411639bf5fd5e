package status

// Status is the lifecycle state of a simulation run.
type Status = int32

const (
	Pending Status = iota
	Running
	Completed
	RoundLimit
	Failed
	Cancelled
)

// String returns a short label for s.
func String(s Status) string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case RoundLimit:
		return "round limit"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
