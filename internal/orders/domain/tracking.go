package domain

// The tracking view renders a fixed 4-stage bar. A stage is completed iff the
// order's status is at or past it in the linear ordering
// pending < processing < shipped < delivered. Cancelled sits outside the bar.

type Stage struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

var stageDefs = []struct{ key, label string }{
	{"submitted", "Order Submitted"},
	{"processing", "Processing"},
	{"shipped", "Shipped"},
	{"delivered", "Delivered"},
}

// StageIndex maps a status to its 1-based position in the bar; cancelled and
// unknown statuses map to 0.
func StageIndex(s OrderStatus) int {
	switch s {
	case StatusPending:
		return 1
	case StatusProcessing:
		return 2
	case StatusShipped:
		return 3
	case StatusDelivered:
		return 4
	}
	return 0
}

func ProgressPercent(s OrderStatus) int {
	return StageIndex(s) * 25
}

func Stages(s OrderStatus) []Stage {
	idx := StageIndex(s)
	stages := make([]Stage, len(stageDefs))
	for i, def := range stageDefs {
		stages[i] = Stage{
			Key:       def.key,
			Label:     def.label,
			Completed: idx >= i+1,
		}
	}
	return stages
}
