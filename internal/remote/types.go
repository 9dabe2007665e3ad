package remote

// Task represents a single remote task item.
type Task struct {
	ID     string
	Title  string
	Status string // "needsAction" or "completed"
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
