package runs

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/tag-extractor/pkg/db"
	"github.com/urfave/cli/v2"
)

func openDB(c *cli.Context) (*dbpkg.DB, error) {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// RunsAction lists recent runs.
func RunsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-8s %-8s %-10s %-30s\n",
		"ID", "Created", "Sources", "Tags", "Total", "Language", "Stop Words")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		language := r.Language
		if language == "" {
			language = "-"
		}
		fmt.Fprintf(w, "%-6d %-20s %-8d %-8d %-8d %-10s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.SourceCount,
			r.TagCount,
			r.TokenCount,
			language,
			r.StopWordsSource,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'tag-extractor run <id>' to see details\n")
	return nil
}

// RunAction shows one run, the latest when no ID is given.
func RunAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	sources, err := database.GetRunSources(runID)
	if err != nil {
		return err
	}
	tags, err := database.GetRunTags(runID, c.Int("top"))
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "UUID:        %s\n", run.UUID)
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Stop words:  %s (%d)\n", run.StopWordsSource, run.StopWordCount)
	fmt.Fprintf(w, "Tags:        %d distinct, %d total\n", run.TagCount, run.TokenCount)
	if run.Language != "" {
		fmt.Fprintf(w, "Language:    %s (%.2f)\n", run.Language, run.LanguageConfidence)
	}
	if run.KeepEmpty {
		fmt.Fprintln(w, "Empty tags:  kept")
	}
	if run.OutputPath != "" {
		fmt.Fprintf(w, "Output:      %s\n", run.OutputPath)
	}

	fmt.Fprintf(w, "\nSources (%d):\n", len(sources))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, s := range sources {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, s.Kind, s.Name)
		fmt.Fprintf(w, "    Lines: %d | Size: %d bytes | SHA-256: %.12s\n", s.LineCount, s.SizeBytes, s.ContentHash)
	}

	if len(tags) > 0 {
		fmt.Fprintf(w, "\nTop tags (%d):\n", len(tags))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, tc := range tags {
			fmt.Fprintf(w, "%2d. %s\n", i+1, tc.String())
		}
	}

	fmt.Fprintf(w, "\nTip: Use 'tag-extractor tags %d' to list every tag\n", runID)
	return nil
}

// TagsAction prints a run's tags as "word: count" lines, the same format
// extract writes to its output file.
func TagsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	tags, err := database.GetRunTags(runID, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, tc := range tags {
		fmt.Fprintln(c.App.Writer, tc.String())
	}
	return nil
}
