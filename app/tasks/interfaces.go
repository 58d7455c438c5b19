package tasks

// TaskSchedulerInterface is the scheduling surface used by the main
// application and the API layer.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
