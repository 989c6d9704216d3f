package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sheetboard/app"
	"sheetboard/domain/board"
	"sheetboard/domain/briefing"
	"sheetboard/internal/config"
	"sheetboard/internal/container"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "sheetboard",
		Short:         "Turn spreadsheets into project boards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newContainer builds all components from the environment configuration
func newContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(ctx, cfg)
}

func newAnalyzeCmd() *cobra.Command {
	var description string
	var useClassifier bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "analyze <files...>",
		Short: "Infer a briefing for each spreadsheet and print it as JSON",
		Long: `Analyze one or more .xlsx or .csv files. Files are analyzed concurrently;
a failing file is reported in its own entry and does not stop the others.

Example: sheetboard analyze vendas.xlsx clientes.csv --description "Carteira 2024" --concurrency 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			results, err := analyzeFiles(cmd.Context(), c.ImportService, args, description, useClassifier, concurrency)
			if err != nil {
				return err
			}
			for _, totals := range c.Usage.Snapshot() {
				fmt.Fprintf(cmd.ErrOrStderr(), "classifier usage: %s, %d calls, %d tokens\n", totals.Model, totals.Calls, totals.TotalTokens)
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the spreadsheet contains")
	cmd.Flags().BoolVar(&useClassifier, "ai", false, "Use the external classifier instead of local rules")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum files analyzed at once")

	return cmd
}

func newImportCmd() *cobra.Command {
	var workspace string
	var boardName string
	var description string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Analyze a spreadsheet with local rules and materialize it as a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			report, err := importFile(cmd.Context(), c.ImportService, args[0], description, workspace, boardName)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Complete() {
				fmt.Fprintf(cmd.ErrOrStderr(), "board %s created with %d skipped entities\n", report.BoardID, len(report.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "default", "Workspace that owns the new board")
	cmd.Flags().StringVar(&boardName, "board-name", "", "Board name (derived from the data type when empty)")
	cmd.Flags().StringVar(&description, "description", "", "What the spreadsheet contains")

	return cmd
}

// fileAnalysis is one entry of the analyze output
type fileAnalysis struct {
	File     string             `json:"file"`
	Briefing *briefing.Briefing `json:"briefing,omitempty"`
	RowCount int                `json:"rowCount"`
	Source   briefing.Source    `json:"source,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// analyzeFiles runs one analysis per file with bounded concurrency; output keeps argument order
func analyzeFiles(ctx context.Context, svc *app.ImportService, files []string, description string, useClassifier bool, concurrency int) ([]fileAnalysis, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]fileAnalysis, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, path := range files {
		eg.Go(func() error {
			results[i] = analyzeFile(egCtx, svc, path, description, useClassifier)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeFile(ctx context.Context, svc *app.ImportService, path, description string, useClassifier bool) fileAnalysis {
	entry := fileAnalysis{File: path}

	f, err := os.Open(path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	defer f.Close()

	req := app.AnalyzeRequest{FileName: filepath.Base(path), Content: f, Description: description}
	var result *app.AnalysisResult
	if useClassifier {
		result, err = svc.AnalyzeWithClassifier(ctx, req)
	} else {
		result, err = svc.AnalyzeHeuristic(ctx, req)
	}
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Briefing = result.Briefing
	entry.RowCount = result.ExcelStructure.RowCount
	entry.Source = result.Source
	return entry
}

func importFile(ctx context.Context, svc *app.ImportService, path, description, workspace, boardName string) (*board.MaterializationReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	analysis, err := svc.AnalyzeHeuristic(ctx, app.AnalyzeRequest{
		FileName:    filepath.Base(path),
		Content:     f,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	return svc.Materialize(ctx, app.MaterializeRequest{
		WorkspaceID: workspace,
		BoardName:   boardName,
		Briefing:    analysis.Briefing,
		Headers:     analysis.Table.Headers,
		Rows:        analysis.Table.Rows,
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
