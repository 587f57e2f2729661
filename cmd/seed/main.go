// seed generates sample leaderboard CSV files for local development.
//
// Usage:
//
//	seed -out data -rows 25          # single-file variant
//	seed -out data -rows 25 -oracle  # standard/oracle pair
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/podiumlab/podium/internal/domain/model"
)

const defaultRows = 25

var teams = []string{
	"Argonaut", "Basilisk", "Cascade", "Daybreak", "Ensemble", "Firefly",
	"Gossamer", "Halcyon", "Ironwood", "Juniper", "Kestrel", "Lighthouse",
	"Meridian", "Nimbus", "Obsidian", "Pinnacle", "Quasar", "Riverbed",
	"Solstice", "Tundra", "Umbra", "Vanguard", "Windrose", "Yarrow", "Zenith",
}

var models = []string{
	"gpt-4o", "claude-3", "llama-3-70b", "mistral-large", "gemini-pro",
	"qwen-72b", "deepseek-v2", "command-r",
}

func main() {
	var (
		out    = flag.String("out", "data", "Output directory")
		rows   = flag.Int("rows", defaultRows, "Number of rows per file")
		oracle = flag.Bool("oracle", false, "Generate the standard/oracle pair instead of the single file")
		seed   = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fail(err)
	}

	if *oracle {
		schema := model.DualSchema()
		if err := writeFile(filepath.Join(*out, "leaderboard.csv"), schema, *rows, rng, 0); err != nil {
			fail(err)
		}
		// Oracle scores sit a few points higher, as idealized inputs would.
		if err := writeFile(filepath.Join(*out, "leaderboard_oracle.csv"), schema, *rows, rng, 4.0); err != nil {
			fail(err)
		}
		return
	}

	if err := writeFile(filepath.Join(*out, "leaderboard.csv"), model.SingleSchema(), *rows, rng, 0); err != nil {
		fail(err)
	}
}

func writeFile(path string, schema model.Schema, rows int, rng *rand.Rand, bonus float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{schema.NameKey, schema.ModelKey}
	for _, d := range schema.Domains {
		header = append(header, d.Key)
	}
	if schema.HasDetails {
		header = append(header, schema.RuntimeKey, schema.DateKey, schema.PaperKey)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		team := teams[i%len(teams)]
		record := []string{team, models[rng.Intn(len(models))]}
		for range schema.Domains {
			score := 40 + rng.Float64()*55 + bonus
			if score > 100 {
				score = 100
			}
			record = append(record, fmt.Sprintf("%.3f", score))
		}
		if schema.HasDetails {
			record = append(record,
				fmt.Sprintf("%.2f", 0.5+rng.Float64()*20),
				time.Now().AddDate(0, 0, -rng.Intn(365)).Format("2006-01-02"),
				fmt.Sprintf("https://arxiv.org/abs/24%02d.%05d", 1+rng.Intn(12), rng.Intn(99999)),
			)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %s (%d rows)\n", path, rows)
	return nil
}

func fail(err error) {
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}
