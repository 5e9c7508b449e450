package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/extractor"
	postUC "adsnow-blog/internal/usecase/post"
)

type extractResult struct {
	Post    entity.Post       `json:"post"`
	Sources map[string]string `json:"sources"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		slug      string
		format    string
		save      bool
		published bool
		featured  bool
	)
	cmd := &cobra.Command{
		Use:   "extract <file|->",
		Short: "Extract post metadata from an HTML or Markdown file",
		Long: `Print the post the admin panel would create from a document, with the
source (found or default) of every field.

With --save the post is appended to the content file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			f, err := extractor.ParseFormat(format)
			if err != nil {
				return err
			}
			svc, err := a.posts()
			if err != nil {
				return err
			}

			if save {
				p, err := svc.Create(cmd.Context(), postUC.CreateInput{
					Content:   content,
					Format:    f,
					Slug:      slug,
					Published: published,
					Featured:  featured,
				})
				if err != nil {
					return fmt.Errorf("saving post: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved post %d (%s) to %s\n", p.ID, p.Slug, a.cfg.ContentFile)
				return writeJSON(cmd.OutOrStdout(), p)
			}

			meta, html, err := svc.Preview(content, f, slug)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), extractResult{Post: meta.Post(html), Sources: meta.Sources()})
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "explicit slug")
	cmd.Flags().StringVar(&format, "format", "html", "input format: html or markdown")
	cmd.Flags().BoolVar(&save, "save", false, "append the post to the content file")
	cmd.Flags().BoolVar(&published, "published", false, "mark the saved post as published")
	cmd.Flags().BoolVar(&featured, "featured", false, "mark the saved post as featured")
	return cmd
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>",
		Short: "Print the slug of a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := entity.Slugify(strings.Join(args, " "))
			if s == "" {
				return fmt.Errorf("title %q has no characters usable in a slug", strings.Join(args, " "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

// readInput reads a file, or stdin when name is "-".
func readInput(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
