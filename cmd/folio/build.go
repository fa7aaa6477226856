package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/config"
	"github.com/matsen/folio/internal/site"
	"github.com/matsen/folio/internal/watch"
)

var (
	buildWatch bool
	buildOut   string
)

func init() {
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when content files change")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (default from folio.yml)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the static JSON export",
	Long: `Resolve every page config and write the export:

  publications.jsonl   all publications, newest first
  pages/<name>.json    each page with its resolved content
  areas.json           colour style for every research area and card tag`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, cfg, loader := mustOpenSite()

	out := cfg.OutputPath(root)
	if buildOut != "" {
		out = config.ExpandTilde(buildOut)
	}
	builder := site.NewBuilder(loader, cfg.PublicPath(root), out, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := builder.Build(ctx)
	if err != nil {
		exitWithError(ExitDataError, "building site: %v", err)
	}
	printBuildResult(result, out)

	if !buildWatch {
		return nil
	}

	w := watch.New(loader.Dir, slog.Default())
	if humanOutput {
		outputHuman("Watching %s (Ctrl-C to stop)\n", loader.Dir)
	}
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		result, err := builder.Build(ctx)
		if err != nil {
			return err
		}
		if humanOutput {
			outputHuman("Changed: %s\n", strings.Join(changed, ", "))
		}
		printBuildResult(result, out)
		return nil
	})
}

// BuildResponse is the response for the build command.
type BuildResponse struct {
	site.Result
	Output string `json:"output"`
}

func printBuildResult(result site.Result, out string) {
	if !humanOutput {
		outputJSON(BuildResponse{Result: result, Output: out})
		return
	}

	outputHuman("Built %d pages, %d publications, %d areas into %s\n",
		len(result.Pages), result.Publications, result.Areas, out)
	for _, w := range result.Warnings {
		outputHuman("  warning: %s\n", w)
	}
}
