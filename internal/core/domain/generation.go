package domain

// JobState is the lifecycle state of a generation job.
// Pending may transition to Complete or Failed; both are terminal. A job
// can also land directly in a terminal state on first submit.
type JobState string

const (
	JobPending  JobState = "pending"
	JobComplete JobState = "complete"
	JobFailed   JobState = "failed"
)

// GenerationJob is a snapshot of one unit of generation work. Terminal
// states are not persisted beyond the response that reports them.
type GenerationJob struct {
	ID       string   `json:"request_id,omitempty"`
	Prompt   string   `json:"prompt,omitempty"`
	State    JobState `json:"status"`
	AudioURL string   `json:"audio_url,omitempty"`
	Error    string   `json:"error,omitempty"`
}
