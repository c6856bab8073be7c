package config

type WorkerKeyStruct struct {
	PersistProctorEventsQueue string
	PersistSnapshotsQueue     string
}

var WorkerKey = &WorkerKeyStruct{
	PersistProctorEventsQueue: "persist_proctor_events_queue",
	PersistSnapshotsQueue:     "persist_attempt_snapshots_queue",
}
