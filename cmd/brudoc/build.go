package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/brudoc"
	"pkt.systems/brudoc/internal/config"
)

func newBuildCmd() *cobra.Command {
	d := config.Defaults()
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate documentation for a collection",
		Args:  cobra.NoArgs,
		RunE:  buildE,
	}
	cmd.Flags().StringP(config.KeyInput, "i", d.Input, "Collection directory")
	cmd.Flags().StringP(config.KeyOutput, "o", d.Output, "Output file or directory")
	cmd.Flags().StringP(config.KeyFormat, "f", d.Format, "Output format: html|md|json|openapi[:yaml], with :template for html and md")
	cmd.Flags().StringSliceP(config.KeyExclude, "x", nil, "Glob pattern of folder names to skip (repeatable)")
	cmd.Flags().BoolP(config.KeyVerbose, "v", false, "Print the collection structure")
	cmd.Flags().String(config.KeyTemplates, "", "Template directory (<dir>/<format>/<name>.tmpl)")
	cmd.Flags().String(config.KeyTitle, "", "Page title (default: collection name)")
	return cmd
}

func buildE(cmd *cobra.Command, args []string) error {
	log := loggerFromCmd(cmd)
	ctx := cmd.Context()

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(config.LoadOptions{File: cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	if used != "" {
		log.Debug("build.config", "file", used)
	}
	format, err := brudoc.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	log.Info("build.start", "input", cfg.Input, "output", cfg.Output, "format", format.String())
	c, err := brudoc.ParseCollection(ctx, cfg.Input, brudoc.ParseOptions{Exclude: cfg.Exclude, Logger: log})
	if err != nil {
		log.Error("build.parse.failed", "input", cfg.Input, "err", err)
		return err
	}

	files := c.CountFiles()
	if files == 0 {
		log.Warn("build.empty", "input", cfg.Input, "reason", "no .bru files found")
		return nil
	}
	log.Info("build.parsed", "collection", c.Name, "files", files, "folders", c.CountFolders())
	if cfg.Verbose {
		printStructure(cmd.OutOrStdout(), c)
	}

	path, err := brudoc.Build(ctx, c, brudoc.BuildOptions{
		Format:    format,
		Output:    cfg.Output,
		Templates: cfg.Templates,
		Title:     cfg.Title,
		Logger:    log,
	})
	if err != nil {
		log.Error("build.failed", "format", format.String(), "err", err)
		return err
	}
	log.Info("build.done", "path", path, "requests", files)
	return nil
}

// printStructure writes an indented outline of folders and request names.
func printStructure(w io.Writer, c brudoc.Collection) {
	fmt.Fprintf(w, "%s (collection)\n", c.Name)
	if c.Auth != "" && c.Auth != "none" {
		fmt.Fprintf(w, "  auth: %s\n", c.Auth)
	}
	c.Walk(func(f brudoc.Folder, path []string) {
		indent := strings.Repeat("  ", len(path))
		noun := "files"
		if len(f.Files) == 1 {
			noun = "file"
		}
		fmt.Fprintf(w, "%s+ %s (%d %s)\n", indent, f.Name, len(f.Files), noun)
		for _, doc := range f.Files {
			fmt.Fprintf(w, "%s  - %s\n", indent, doc.Meta.Name)
		}
	})
}
