package runs

import (
	"errors"
	"fmt"
	"strconv"

	dbpkg "github.com/dtnitsch/tag-extractor/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runID, err := database.LatestRunID()
		if errors.Is(err, dbpkg.ErrRunNotFound) {
			return 0, fmt.Errorf("no runs found. Run 'tag-extractor extract --text FILE --stopwords FILE' first")
		}
		return runID, err
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || runID <= 0 {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
