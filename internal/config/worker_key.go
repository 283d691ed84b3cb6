package config

type WorkerKeyStruct struct{}

func NewWorkerKeyStruct() *WorkerKeyStruct {
	return &WorkerKeyStruct{}
}

// ProgressSyncQueue is the Redis list holding passed-exam results whose
// authoritative write failed and must be retried.
const progressSyncQueue = "queue:progress_sync"

func (r *WorkerKeyStruct) ProgressSyncQueueKey() string {
	return progressSyncQueue
}

var WorkerKey = NewWorkerKeyStruct()
