package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"adsnow-blog/internal/bootstrap"
	"adsnow-blog/internal/infra/github"
	publishUC "adsnow-blog/internal/usecase/publish"
)

var errNoRepository = errors.New("no content repository configured: set GITHUB_OWNER and GITHUB_REPO")

func newPublishCmd(a *app) *cobra.Command {
	var (
		token        string
		message      string
		sitemap      bool
		skipIndexing bool
		allowEmpty   bool
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the content file to the site repository",
		Long: `Commit the local content file to the site repository, optionally with
the sitemap, then submit the published posts for indexing.

An empty or missing content file is refused unless --allow-empty is given,
so a wrong --content path cannot wipe the published list.

The token defaults to GITHUB_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gh, err := bootstrap.GitHub(a.cfg.GitHub)
			if err != nil {
				return err
			}
			if gh == nil {
				return errNoRepository
			}
			indexer, err := bootstrap.Indexer(*a.cfg)
			if err != nil {
				return fmt.Errorf("indexing: %w", err)
			}
			svc, err := a.posts()
			if err != nil {
				return err
			}
			posts, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading %s: %w", a.cfg.ContentFile, err)
			}

			req := publishUC.Request{
				Token:        firstNonEmpty(token, a.cfg.GitHub.Token),
				Posts:        posts,
				Message:      message,
				SkipIndexing: skipIndexing,
				AllowEmpty:   allowEmpty,
			}
			if sitemap {
				if a.cfg.Site.URL == "" {
					return errors.New("--sitemap needs SITE_URL")
				}
				req.Artifact, err = publishUC.SitemapArtifact(bootstrap.Site(a.cfg.Site), bootstrap.SitemapPath(a.cfg.GitHub), posts)
				if err != nil {
					return err
				}
			}

			pipeline := bootstrap.Pipeline(a.cfg.GitHub, gh, indexer)
			report, err := pipeline.Run(cmd.Context(), req)
			if errors.Is(err, publishUC.ErrEmptyContent) {
				return fmt.Errorf("%s has no posts (pass --allow-empty to clear the remote list): %w", a.cfg.ContentFile, err)
			}
			if err != nil {
				return err
			}
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}
			if !report.Success {
				return fmt.Errorf("publish failed (%s): %s", report.Failure, report.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (default: GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVar(&sitemap, "sitemap", false, "also commit the sitemap")
	cmd.Flags().BoolVar(&skipIndexing, "skip-indexing", false, "do not submit URLs for indexing")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "publish an empty post list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the GitHub token and the content file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gh, err := bootstrap.GitHub(a.cfg.GitHub)
			if err != nil {
				return err
			}
			if gh == nil {
				return errNoRepository
			}
			client := gh.WithToken(firstNonEmpty(token, a.cfg.GitHub.Token))

			user, err := client.VerifyCredential(cmd.Context())
			if err != nil {
				return describeGitHubError("token rejected", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Authenticated as %s\n", user.Login)

			path := firstNonEmpty(a.cfg.GitHub.ContentPath, publishUC.DefaultContentPath)
			rev, err := client.GetRevision(cmd.Context(), path)
			if err != nil {
				return describeGitHubError("reading "+path, err)
			}
			if rev.Exists {
				fmt.Fprintf(out, "%s on %s is at %s\n", path, a.cfg.GitHub.Target(), rev.SHA)
			} else {
				fmt.Fprintf(out, "%s does not exist on %s yet; the first publish creates it\n", path, a.cfg.GitHub.Target())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (default: GITHUB_TOKEN)")
	return cmd
}

func printReport(w io.Writer, r *publishUC.Report) {
	for _, s := range r.Steps {
		mark := "ok"
		switch {
		case s.Skipped:
			mark = "--"
		case !s.Success:
			mark = "!!"
		case s.Warning:
			mark = "~~"
		}
		fmt.Fprintf(w, "[%s] %-10s %s\n", mark, s.Step, s.Message)
	}
	for _, o := range r.Indexing {
		if !o.Success {
			fmt.Fprintf(w, "     indexing %s: %s\n", o.URL, o.Error)
		}
	}
	fmt.Fprintln(w, r.Message)
	if r.CommitSHA != "" {
		fmt.Fprintf(w, "commit %s\n", r.CommitSHA)
	}
}

func describeGitHubError(what string, err error) error {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: GitHub answered %d: %s", what, apiErr.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
