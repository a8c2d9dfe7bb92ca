package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-helper/internal/session"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

var (
	benchLimit  int
	benchTurns  int
	benchOpener string
	benchQuiet  bool

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Play every dictionary word as the answer and report guess counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchLimit, "limit", "n", 0, "only play the first N answers (0 = all)")
	f.IntVar(&benchTurns, "turns", 6, "guesses allowed per game")
	f.StringVar(&benchOpener, "opener", "", "first guess (default: the top-ranked word)")
	f.BoolVarP(&benchQuiet, "quiet", "q", false, "hide the progress bar")
}

// benchResult aggregates played games.
type benchResult struct {
	Games        int
	Solved       int
	Total        int // guesses over solved games
	Distribution map[int]int
	Failed       []string
}

func (b benchResult) mean() float64 {
	if b.Solved == 0 {
		return 0
	}
	return float64(b.Total) / float64(b.Solved)
}

func runBench(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	db, err := openOptionalDB(ctx)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	d, err := loadDictionary(ctx, db)
	if err != nil {
		return err
	}
	r := newRanker(d, 1)

	opener := strings.ToUpper(strings.TrimSpace(benchOpener))
	if opener == "" {
		rk, err := r.Rank(ctx, d.All(), nil)
		if err != nil {
			return err
		}
		best, _ := rk.Best()
		opener = best.Word
	}
	if !d.Contains(opener) {
		return fmt.Errorf("opener %q is not in the dictionary", opener)
	}

	answers := d.All()
	if benchLimit > 0 && benchLimit < len(answers) {
		answers = answers[:benchLimit]
	}

	var bar *progressbar.ProgressBar
	if !benchQuiet {
		bar = progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	started := time.Now()
	res := benchResult{Distribution: map[int]int{}}
	for _, answer := range answers {
		turns, ok, err := play(ctx, d, r, answer, opener, benchTurns)
		if err != nil {
			return fmt.Errorf("play %s: %w", answer, err)
		}
		res.Games++
		if ok {
			res.Solved++
			res.Total += turns
			res.Distribution[turns]++
		} else {
			res.Failed = append(res.Failed, answer)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	log.Info().
		Int("games", res.Games).
		Int("solved", res.Solved).
		Str("opener", opener).
		Dur("took", time.Since(started)).
		Msg("bench finished")

	printBench(cmd.OutOrStdout(), opener, res)
	return nil
}

// play solves answer greedily: open with opener, then always guess the
// top-ranked dictionary word. It reports the guesses used and whether the
// answer was found within turns.
func play(ctx context.Context, d *solver.Dictionary, r *solver.Ranker, answer, opener string, turns int) (int, bool, error) {
	s := session.New(d, session.WithRanker(r))
	guess := opener
	for turn := 1; turn <= turns; turn++ {
		if guess == "" {
			rk, err := s.Suggestions(ctx)
			if err != nil {
				return turn, false, err
			}
			best, ok := rk.Best()
			if !ok {
				return turn, false, solver.ErrNoCandidatesRemain
			}
			guess = best.Word
		}
		g, err := solver.GuessFor(guess, answer)
		if err != nil {
			return turn, false, err
		}
		if err := s.Apply(g); err != nil {
			return turn, false, err
		}
		if g.Solved() {
			return turn, true, nil
		}
		guess = ""
	}
	return turns, false, ctx.Err()
}

func printBench(out io.Writer, opener string, res benchResult) {
	fmt.Fprintf(out, "opener %s: solved %d/%d, mean %.3f guesses\n", opener, res.Solved, res.Games, res.mean())
	keys := lo.Keys(res.Distribution)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %d: %d\n", k, res.Distribution[k])
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(out, "  failed: %v\n", res.Failed)
	}
}
