package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"adsnow-blog/internal/bootstrap"
	"adsnow-blog/internal/infra/indexing"
	"adsnow-blog/internal/usecase/index"
)

func newIndexCmd(a *app) *cobra.Command {
	var deleted bool
	cmd := &cobra.Command{
		Use:   "index <url>...",
		Short: "Submit URLs to the Google Indexing API",
		Long: `Notify Google that pages were updated, or removed with --deleted.

URLs must belong to SITE_URL. They are submitted one per INDEXING_INTERVAL.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bootstrap.Indexer(*a.cfg)
			if err != nil {
				return fmt.Errorf("indexing: %w", err)
			}
			if !svc.Enabled() {
				return fmt.Errorf("%w: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_SERVICE_ACCOUNT_JSON", index.ErrNotConfigured)
			}
			typ := indexing.URLUpdated
			if deleted {
				typ = indexing.URLDeleted
			}
			// URL の形式を送信前にまとめて検証する
			for _, u := range args {
				if err := svc.ValidateURL(u); err != nil {
					return err
				}
			}

			failed := 0
			for _, o := range svc.SubmitAll(cmd.Context(), args, typ) {
				if o.Success {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", o.Type, o.URL, o.NotifyTime)
					continue
				}
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "failed %s: %s\n", o.URL, o.Error)
			}
			if failed > 0 {
				return errors.New(pluralize(failed, "URL was", "URLs were") + " not submitted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&deleted, "deleted", false, "notify that the pages were removed")
	return cmd
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
