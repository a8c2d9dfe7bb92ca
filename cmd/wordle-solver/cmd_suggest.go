package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-helper/internal/database"
	"github.com/robalobadob/wordle-helper/internal/session"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

var (
	suggestGuesses    []string
	suggestLimit      int
	suggestHard       bool
	suggestShow       int
	fullRankThreshold int

	suggestCmd = &cobra.Command{
		Use:   "suggest",
		Short: "Print the best next guesses for the feedback so far",
		Example: `  wordle-solver suggest
  wordle-solver suggest --guess crane:00102 --guess split:20010`,
		Args: cobra.NoArgs,
		RunE: runSuggest,
	}
)

func init() {
	f := suggestCmd.Flags()
	f.StringArrayVarP(&suggestGuesses, "guess", "g", nil, "a guess as WORD:PATTERN (0 absent, 1 present, 2 correct); repeatable")
	f.IntVarP(&suggestLimit, "limit", "n", 10, "suggestions to print")
	f.BoolVar(&suggestHard, "hard", false, "only suggest words that could still be the answer")
	f.IntVar(&suggestShow, "show", 20, "print the remaining candidates when there are at most this many")
	f.IntVar(&fullRankThreshold, "full-rank-threshold", 2000, "with no guesses, print the stock openers instead of ranking a dictionary larger than this")
}

func runSuggest(cmd *cobra.Command, _ []string) error {
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
	sess := session.New(d,
		session.WithRanker(newRanker(d, suggestLimit)),
		session.WithLogger(log.Logger),
	)
	for _, raw := range suggestGuesses {
		g, err := solver.ParseGuess(raw)
		if err != nil {
			return fmt.Errorf("--guess %q: %w", raw, err)
		}
		if err := sess.Apply(g); err != nil {
			return fmt.Errorf("--guess %q: %w", raw, err)
		}
	}

	out := cmd.OutOrStdout()
	cands := sess.Candidates()
	if sess.Solved() {
		answer, _ := sess.Answer()
		fmt.Fprintf(out, "solved: %s\n", answer)
		return nil
	}
	fmt.Fprintf(out, "%d candidates\n", len(cands))
	if len(cands) == 0 {
		return fmt.Errorf("%w: check the patterns", solver.ErrNoCandidatesRemain)
	}
	if len(cands) <= suggestShow {
		fmt.Fprintln(out, strings.Join(cands, " "))
	}

	if len(suggestGuesses) == 0 && d.Len() > fullRankThreshold {
		if openers := lo.Filter(solver.DefaultOpeners, func(w string, _ int) bool { return d.Contains(w) }); len(openers) > 0 {
			fmt.Fprintf(out, "openers: %s\n", strings.Join(openers, " "))
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RankTimeout)
	defer cancel()
	var rk solver.Ranking
	if suggestHard {
		rk, err = sess.SuggestionsFrom(ctx, cands)
	} else {
		rk, err = sess.Suggestions(ctx)
	}
	if err != nil {
		return err
	}
	printRanking(out, rk)
	return nil
}

// printRanking writes rk as an aligned table.
func printRanking(out io.Writer, rk solver.Ranking) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWORD\tSCORE\tENTROPY\tGROUPS\tCANDIDATE")
	for i, s := range rk.Suggestions {
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%d\t%s\n",
			i+1, s.Word, s.Score.Total, s.Score.Entropy, s.Groups, lo.Ternary(s.IsCandidate, "yes", ""))
	}
	_ = tw.Flush()
	if rk.Partial {
		fmt.Fprintf(out, "(timed out after scoring %d words)\n", rk.Scored)
	}
}

// openOptionalDB opens --db when given.
func openOptionalDB(ctx context.Context) (*sql.DB, error) {
	if dbPath == "" {
		return nil, nil
	}
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
