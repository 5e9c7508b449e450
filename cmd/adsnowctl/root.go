package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"adsnow-blog/internal/bootstrap"
	"adsnow-blog/internal/config"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/infra/adapter/persistence/jsonfile"
	"adsnow-blog/internal/observability/logging"
	postUC "adsnow-blog/internal/usecase/post"
)

var (
	version = "dev"
	commit  = "none"
)

// app is the state shared by the subcommands. It is filled before any
// subcommand runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	contentFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "adsnowctl",
		Short: "Manage the AdsNow blog content",
		Long: `adsnowctl works on the same content file as the blog API.

Configuration is read from the environment, .env and config/site.yaml,
exactly like the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.contentFile, "content", "", "content file (default: CONTENT_FILE)")

	root.AddCommand(
		newVersionCmd(),
		newSlugCmd(),
		newExtractCmd(a),
		newPublishCmd(a),
		newIndexCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.contentFile != "" {
		cfg.ContentFile = a.contentFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.NewTextLogger()
	slog.SetDefault(a.logger)
	return nil
}

// posts returns the post service over the content file.
func (a *app) posts() (*postUC.Service, error) {
	imp, err := bootstrap.Importer(a.cfg.Import)
	if err != nil {
		return nil, err
	}
	ext := extractor.New(bootstrap.ExtractorOptions(a.cfg.Site))
	return postUC.NewService(jsonfile.NewPostStore(a.cfg.ContentFile), ext, imp), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adsnowctl %s (commit: %s)\n", version, commit)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
