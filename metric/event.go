package metric

// Event represents counted handler outcome
type Event string

const (
	Pending  Event = "Pending"
	Success  Event = "Success"
	Override Event = "Override"
	NotFound Event = "NotFound"
	Error    Event = "Error"
)
