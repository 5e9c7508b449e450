package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/infra/adapter/persistence/jsonfile"
	"adsnow-blog/internal/infra/github"
	"adsnow-blog/internal/infra/indexing"
	"adsnow-blog/internal/observability/metrics"
	"adsnow-blog/internal/observability/tracing"
	"adsnow-blog/internal/usecase/index"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultContentPath is the path of the content file in the site repository.
	DefaultContentPath = "data/blog-posts.json"
	// DefaultCommitMessage is used when a request carries no message.
	DefaultCommitMessage = "Update blog posts"
	// DefaultVerifyDelay is the pause before the revision is re-read.
	DefaultVerifyDelay = 2 * time.Second
)

// Committer is a GitHub contents client bound to one access token.
type Committer interface {
	VerifyCredential(ctx context.Context) (github.User, error)
	GetRevision(ctx context.Context, path string) (github.Revision, error)
	Write(ctx context.Context, path string, content []byte, rev github.Revision, message string) (github.WriteResult, error)
}

// Connector binds a Committer to a token.
type Connector func(token string) Committer

// Config controls a Pipeline.
type Config struct {
	// ContentPath is the repository path of the post list.
	ContentPath string
	// CommitMessage prefixes every commit. The run timestamp is appended.
	CommitMessage string
	// Verify re-reads the revision after VerifyDelay to confirm the write.
	Verify      bool
	VerifyDelay time.Duration
	// CallTimeout is the per-call deadline of the remote client. It is only
	// used in messages.
	CallTimeout time.Duration
	Now         func() time.Time
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ContentPath:   DefaultContentPath,
		CommitMessage: DefaultCommitMessage,
		Verify:        true,
		VerifyDelay:   DefaultVerifyDelay,
		CallTimeout:   github.DefaultTimeout,
		Now:           time.Now,
	}
}

// Artifact is a secondary file committed after the content file, such as
// the sitemap. Its failure is reported but never fails the run.
type Artifact struct {
	Path    string
	Content []byte
	Message string
}

// Request is one publish run.
type Request struct {
	Token string
	// Posts is the full list. It replaces the remote file wholesale.
	Posts []entity.Post
	// Message overrides Config.CommitMessage.
	Message  string
	Artifact *Artifact
	// IndexURLs overrides the submitted URLs. Nil means every published post.
	IndexURLs    []string
	SkipIndexing bool
	// AllowEmpty permits publishing an empty list, which clears the remote
	// file. Without it an empty list is rejected as ErrEmptyContent.
	AllowEmpty bool
}

// Pipeline publishes post lists. Runs are independent: two runs started
// without a reload in between overwrite each other wholesale, the last
// writer wins. Only a revision that changes between the read and the write
// of a single run is detected, as FailureConflict.
type Pipeline struct {
	connect     Connector
	indexer     *index.Service
	credentials *CredentialCache
	cfg         Config
}

// NewPipeline creates a Pipeline. indexer and credentials may be nil, which
// disables indexing and credential caching respectively.
func NewPipeline(connect Connector, indexer *index.Service, credentials *CredentialCache, cfg Config) *Pipeline {
	if cfg.ContentPath == "" {
		cfg.ContentPath = DefaultContentPath
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = github.DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		connect:     connect,
		indexer:     indexer,
		credentials: credentials,
		cfg:         cfg,
	}
}

// Validate checks a request without touching the network.
func Validate(req Request) error {
	if strings.TrimSpace(req.Token) == "" {
		return ErrMissingToken
	}
	if len(req.Posts) == 0 && !req.AllowEmpty {
		return ErrEmptyContent
	}
	if err := entity.ValidatePosts(req.Posts); err != nil {
		return err
	}
	if a := req.Artifact; a != nil && (strings.TrimSpace(a.Path) == "" || len(a.Content) == 0) {
		return ErrInvalidArtifact
	}
	return nil
}

// IsValidationError reports whether err was returned by Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrInvalidArtifact) ||
		errors.Is(err, entity.ErrInvalidInput) ||
		errors.Is(err, entity.ErrDuplicateSlug)
}

// Run executes the pipeline. An error is returned only when the request is
// invalid; remote failures are described by the report.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	if err := Validate(req); err != nil {
		metrics.RecordPublishRun("rejected", time.Since(start))
		return nil, err
	}

	r := &run{
		Pipeline: p,
		req:      req,
		token:    strings.TrimSpace(req.Token),
		report: &Report{
			RunID:    uuid.NewString(),
			Steps:    []StepResult{},
			Indexing: []index.Outcome{},
		},
	}
	r.logger = slog.Default().With(slog.String("run_id", r.report.RunID))
	r.committer = p.connect(r.token)

	ctx, span := tracing.StartSpan(ctx, "publish.Run",
		attribute.String("publish.run_id", r.report.RunID),
		attribute.Int("publish.posts", len(req.Posts)))
	r.execute(ctx)

	var spanErr error
	if !r.report.Success {
		spanErr = errors.New(r.report.Message)
	}
	span.SetAttributes(attribute.Bool("publish.success", r.report.Success))
	tracing.EndSpan(span, spanErr)

	res := "success"
	switch {
	case r.report.Failure == FailureConflict:
		res = "conflict"
	case !r.report.Success:
		res = "failure"
	}
	metrics.RecordPublishRun(res, time.Since(start))

	r.logger.Info("publish run finished",
		slog.Bool("success", r.report.Success),
		slog.String("failure", r.report.Failure.String()),
		slog.Int("indexing_failures", r.report.IndexingFailures()),
		slog.Duration("duration", time.Since(start)))
	return r.report, nil
}

// run holds the state of one invocation.
type run struct {
	*Pipeline
	req       Request
	token     string
	committer Committer
	report    *Report
	logger    *slog.Logger
}

func (r *run) execute(ctx context.Context) {
	content, ok := r.serialize(ctx)
	if !ok {
		return
	}
	if !r.verifyCredential(ctx) {
		return
	}
	rev, ok := r.revision(ctx)
	if !ok {
		return
	}
	res, ok := r.write(ctx, content, rev)
	if !ok {
		return
	}
	if !r.verify(ctx, rev, res) {
		return
	}
	r.artifact(ctx)
	r.index(ctx)
}

func (r *run) serialize(ctx context.Context) ([]byte, bool) {
	_, span := tracing.StartSpan(ctx, "publish.serialize")
	content, err := jsonfile.Encode(r.req.Posts)
	tracing.EndSpan(span, err)
	if err != nil {
		r.failWith(StepSerialize, FailureInternal, "Could not serialize the post list.", err)
		return nil, false
	}
	r.succeed(StepSerialize, fmt.Sprintf("Serialized %d posts (%d bytes).", len(r.req.Posts), len(content)))
	return content, true
}

func (r *run) verifyCredential(ctx context.Context) bool {
	if r.credentials != nil {
		if user, ok := r.credentials.Get(r.token); ok {
			r.succeed(StepCredential, fmt.Sprintf("Token verified as %s (cached).", user.Login))
			return true
		}
	}

	ctx, span := tracing.StartSpan(ctx, "publish.credential")
	start := time.Now()
	user, err := r.committer.VerifyCredential(ctx)
	metrics.RecordRemoteCall("github", "verify_credential", time.Since(start), err == nil)
	tracing.EndSpan(span, err)
	if err != nil {
		r.fail(StepCredential, err)
		return false
	}

	if r.credentials != nil {
		r.credentials.Add(r.token, user)
	}
	r.succeed(StepCredential, fmt.Sprintf("Token verified as %s.", user.Login))
	return true
}

func (r *run) revision(ctx context.Context) (github.Revision, bool) {
	rev, err := r.getRevision(ctx, r.cfg.ContentPath)
	if err != nil {
		r.fail(StepRevision, err)
		return github.Revision{}, false
	}
	if rev.Exists {
		r.succeed(StepRevision, fmt.Sprintf("Current revision of %s is %s.", r.cfg.ContentPath, shortSHA(rev.SHA)))
	} else {
		r.succeed(StepRevision, fmt.Sprintf("%s does not exist yet and will be created.", r.cfg.ContentPath))
	}
	return rev, true
}

func (r *run) write(ctx context.Context, content []byte, rev github.Revision) (github.WriteResult, bool) {
	message := r.req.Message
	if message == "" {
		message = r.cfg.CommitMessage
	}
	res, err := r.put(ctx, r.cfg.ContentPath, content, rev, r.stamp(message))
	if err != nil {
		r.fail(StepWrite, err)
		return github.WriteResult{}, false
	}

	r.report.Outcome = res.Outcome.String()
	if res.Outcome == github.Conflict {
		r.failWith(StepWrite, FailureConflict,
			fmt.Sprintf("%s changed on GitHub after it was read. Reload the posts and publish again.", r.cfg.ContentPath),
			errors.New(res.Message))
		return github.WriteResult{}, false
	}

	r.report.CommitSHA = res.CommitSHA
	r.succeed(StepWrite, fmt.Sprintf("%s %s in commit %s.", r.cfg.ContentPath, res.Outcome, shortSHA(res.CommitSHA)))
	return res, true
}

// verify confirms the write landed. A verification error is only a warning
// when the write returned a commit id.
func (r *run) verify(ctx context.Context, before github.Revision, res github.WriteResult) bool {
	if !r.cfg.Verify {
		r.skip(StepVerify, "Verification is disabled.")
		r.complete()
		return true
	}

	if r.cfg.VerifyDelay > 0 {
		select {
		case <-time.After(r.cfg.VerifyDelay):
		case <-ctx.Done():
			return r.verifyFailed(ctx.Err(), res)
		}
	}

	after, err := r.getRevision(ctx, r.cfg.ContentPath)
	if err != nil {
		return r.verifyFailed(err, res)
	}

	switch {
	case after.Exists && after.SHA != before.SHA:
		r.succeed(StepVerify, fmt.Sprintf("Revision changed to %s.", shortSHA(after.SHA)))
	case res.CommitSHA != "":
		r.succeed(StepVerify, fmt.Sprintf("Revision unchanged, commit %s assumed to have landed.", shortSHA(res.CommitSHA)))
	default:
		r.failWith(StepVerify, FailureVerification,
			"The write could not be confirmed: the revision did not change and no commit was returned.", nil)
		return false
	}
	r.complete()
	return true
}

func (r *run) verifyFailed(err error, res github.WriteResult) bool {
	if res.CommitSHA == "" {
		r.failWith(StepVerify, FailureVerification, "The write could not be confirmed.", err)
		return false
	}
	r.record(StepResult{
		Step:    StepVerify,
		Success: true,
		Warning: true,
		Message: fmt.Sprintf("Verification failed, commit %s assumed to have landed.", shortSHA(res.CommitSHA)),
		Error:   err.Error(),
	})
	r.logger.Warn("publish verification failed", slog.Any("error", err))
	r.complete()
	return true
}

func (r *run) complete() {
	r.report.Success = true
	r.report.Failure = FailureNone
	r.report.Message = fmt.Sprintf("Published %d posts (%s).", len(r.req.Posts), r.report.Outcome)
}

func (r *run) artifact(ctx context.Context) {
	a := r.req.Artifact
	if a == nil {
		return
	}

	rev, err := r.getRevision(ctx, a.Path)
	if err != nil {
		r.artifactFailed(a, err)
		return
	}
	message := a.Message
	if message == "" {
		message = "Update " + a.Path
	}
	res, err := r.put(ctx, a.Path, a.Content, rev, r.stamp(message))
	if err != nil {
		r.artifactFailed(a, err)
		return
	}
	if res.Outcome == github.Conflict {
		r.artifactFailed(a, errors.New(res.Message))
		return
	}
	r.succeed(StepArtifact, fmt.Sprintf("%s %s in commit %s.", a.Path, res.Outcome, shortSHA(res.CommitSHA)))
}

func (r *run) artifactFailed(a *Artifact, err error) {
	_, message := classify(err, r.cfg.CallTimeout)
	r.record(StepResult{
		Step:    StepArtifact,
		Success: false,
		Message: fmt.Sprintf("Could not publish %s: %s", a.Path, message),
		Error:   err.Error(),
	})
	r.logger.Warn("publish artifact failed", slog.String("path", a.Path), slog.Any("error", err))
}

func (r *run) index(ctx context.Context) {
	switch {
	case r.req.SkipIndexing:
		r.skip(StepIndexing, "Indexing was not requested.")
		return
	case r.indexer == nil || !r.indexer.Enabled():
		r.skip(StepIndexing, "Indexing is not configured.")
		return
	}

	urls := r.req.IndexURLs
	if urls == nil {
		for _, post := range r.req.Posts {
			if post.Published {
				urls = append(urls, post.URL(r.indexer.SiteURL()))
			}
		}
	}
	if len(urls) == 0 {
		r.skip(StepIndexing, "No published posts to submit.")
		return
	}

	ctx, span := tracing.StartSpan(ctx, "publish.indexing", attribute.Int("indexing.urls", len(urls)))
	r.report.Indexing = r.indexer.SubmitAll(ctx, urls, indexing.URLUpdated)
	failed := r.report.IndexingFailures()
	span.SetAttributes(attribute.Int("indexing.failures", failed))
	tracing.EndSpan(span, nil)

	res := StepResult{
		Step:    StepIndexing,
		Success: failed == 0,
		Warning: failed > 0,
		Message: fmt.Sprintf("Submitted %d of %d URLs for indexing.", len(urls)-failed, len(urls)),
	}
	r.record(res)
}

func (r *run) getRevision(ctx context.Context, path string) (github.Revision, error) {
	ctx, span := tracing.StartSpan(ctx, "publish.revision", attribute.String("github.path", path))
	start := time.Now()
	rev, err := r.committer.GetRevision(ctx, path)
	metrics.RecordRemoteCall("github", "get_revision", time.Since(start), err == nil)
	tracing.EndSpan(span, err)
	return rev, err
}

func (r *run) put(ctx context.Context, path string, content []byte, rev github.Revision, message string) (github.WriteResult, error) {
	ctx, span := tracing.StartSpan(ctx, "publish.write",
		attribute.String("github.path", path),
		attribute.Bool("github.update", rev.Exists))
	start := time.Now()
	res, err := r.committer.Write(ctx, path, content, rev, message)
	metrics.RecordRemoteCall("github", "write", time.Since(start), err == nil && res.Outcome != github.Conflict)
	tracing.EndSpan(span, err)
	return res, err
}

func (r *run) stamp(message string) string {
	return fmt.Sprintf("%s (%s)", message, r.cfg.Now().UTC().Format(time.RFC3339))
}

func (r *run) succeed(step, message string) {
	r.record(StepResult{Step: step, Success: true, Message: message})
}

func (r *run) skip(step, message string) {
	r.report.Steps = append(r.report.Steps, StepResult{Step: step, Success: true, Skipped: true, Message: message})
}

// fail records a remote error on step and ends the run.
func (r *run) fail(step string, err error) {
	failure, message := classify(err, r.cfg.CallTimeout)
	if failure == FailureAuth && r.credentials != nil {
		r.credentials.Remove(r.token)
	}
	r.failWith(step, failure, message, err)
}

func (r *run) failWith(step string, failure Failure, message string, err error) {
	res := StepResult{Step: step, Success: false, Message: message}
	if err != nil {
		res.Error = err.Error()
	}
	r.record(res)
	r.report.Success = false
	r.report.Failure = failure
	r.report.Message = message
	r.logger.Warn("publish step failed",
		slog.String("step", step),
		slog.String("failure", failure.String()),
		slog.Any("error", err))
}

func (r *run) record(res StepResult) {
	r.report.Steps = append(r.report.Steps, res)
	metrics.RecordPublishStep(res.Step, res.Success)
}

// classify maps a remote error to a failure kind and an operator message.
func classify(err error, timeout time.Duration) (Failure, string) {
	var apiErr *github.APIError
	switch {
	case github.IsTimeout(err):
		return FailureTimeout, fmt.Sprintf("GitHub did not answer within %s. Please try again.", timeout)
	case github.IsUnauthorized(err):
		return FailureAuth, "GitHub rejected the access token. Check that it is valid and has the repo scope."
	case github.IsForbidden(err):
		return FailureForbidden, "The access token may not write to the repository. It needs the contents: write permission."
	case errors.As(err, &apiErr):
		return FailureRemote, fmt.Sprintf("GitHub returned HTTP %d: %s", apiErr.StatusCode, apiErr.Message)
	default:
		return FailureRemote, fmt.Sprintf("GitHub request failed: %v", err)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
