package transcription

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// JobStatus mirrors the remote job lifecycle.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Job is a read-only snapshot of the remote transcription job. It is built
// from polling reads only; nothing in this package mutates the remote state.
type Job struct {
	ID            string
	Status        JobStatus
	TranscriptURI string
	FailureReason string
}

// Terminal reports whether the job has reached a state with no further
// transitions.
func (j Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// snapshot converts the service response into a Job.
func snapshot(tj *types.TranscriptionJob) Job {
	job := Job{
		ID:            aws.ToString(tj.TranscriptionJobName),
		Status:        JobStatus(tj.TranscriptionJobStatus),
		FailureReason: aws.ToString(tj.FailureReason),
	}
	if tj.Transcript != nil {
		job.TranscriptURI = aws.ToString(tj.Transcript.TranscriptFileUri)
	}
	return job
}
