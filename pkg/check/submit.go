package check

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dkoosis/octocheck/internal/github"
	"github.com/dkoosis/octocheck/pkg/annotation"
)

// completedAtLayout is the UTC timestamp format the Checks API expects.
const completedAtLayout = "2006-01-02T15:04:05Z"

// Publisher creates and updates check runs on one repository.
// *github.Repo satisfies it.
type Publisher interface {
	CreateCheckRun(ctx context.Context, req github.CreateCheckRun) (*github.CheckRun, error)
	UpdateCheckRun(ctx context.Context, id int64, out github.Output) (*github.CheckRun, error)
}

// Request carries the check-run fields that do not come from parsing.
type Request struct {
	Name       string
	HeadSHA    string
	DetailsURL string
	Title      string
	Rewrite    PathRewrite

	// BatchSize defaults to MaxBatch.
	BatchSize int
	// ExternalID defaults to a random UUID.
	ExternalID string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Submit publishes result as one completed check run. The first batch goes
// out with the create call (an empty batch when there are no annotations);
// every further batch is sent as an update. Submit stops at the first error.
func Submit(ctx context.Context, pub Publisher, req Request, result *Result, log logrus.FieldLogger) (*github.CheckRun, error) {
	now := req.Now
	if now == nil {
		now = time.Now
	}
	externalID := req.ExternalID
	if externalID == "" {
		externalID = uuid.NewString()
	}

	out := result.Output(req.Title)
	batches := Batch(result.Annotations, req.BatchSize, req.Rewrite)
	if len(batches) == 0 {
		batches = [][]annotation.Annotation{nil}
	}

	run, err := pub.CreateCheckRun(ctx, github.CreateCheckRun{
		Name:        req.Name,
		HeadSHA:     req.HeadSHA,
		DetailsURL:  req.DetailsURL,
		ExternalID:  externalID,
		Status:      "completed",
		Conclusion:  result.Status.Conclusion(),
		CompletedAt: now().UTC().Format(completedAtLayout),
		Output:      payload(out, batches[0]),
	})
	if err != nil {
		return nil, fmt.Errorf("create check run: %w", err)
	}
	if log != nil {
		log = log.WithField("check_run", run.ID)
		log.WithField("batch", 1).Debugf("created check run with %d annotations", len(batches[0]))
	}

	for i, batch := range batches[1:] {
		if _, err := pub.UpdateCheckRun(ctx, run.ID, *payload(out, batch)); err != nil {
			return run, fmt.Errorf("update check run %d (batch %d): %w", run.ID, i+2, err)
		}
		if log != nil {
			log.WithField("batch", i+2).Debugf("sent %d annotations", len(batch))
		}
	}
	return run, nil
}

func payload(out Output, batch []annotation.Annotation) *github.Output {
	anns := make([]github.Annotation, 0, len(batch))
	for _, a := range batch {
		anns = append(anns, github.Annotation{
			Path:            a.Path,
			StartLine:       a.StartLine,
			EndLine:         a.EndLine,
			AnnotationLevel: string(a.Level),
			Message:         a.Message,
			StartColumn:     a.StartColumn,
			EndColumn:       a.EndColumn,
			Title:           a.Title,
			RawDetails:      a.RawDetails,
		})
	}
	return &github.Output{
		Title:       out.Title,
		Summary:     out.Summary,
		Text:        out.Text,
		Annotations: anns,
	}
}
