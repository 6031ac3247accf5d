package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

func main() {
	lineLength := flag.Int("line", 1, "evolution line length for the dependency penalty")
	byScore := flag.Bool("sort", false, "sort output by score descending")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cardscore [flags] <set.json> [...]")
		os.Exit(2)
	}

	cat := card.NewCatalog()
	for _, path := range flag.Args() {
		res := cat.LoadSetFile(path)
		if !res.Success {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, res.Err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %s/%s v%s (%d cards)\n", res.Author, res.SetName, res.Version, res.Loaded)
	}

	type row struct {
		name  string
		score card.BalanceScore
	}
	var rows []row
	for _, meta := range cat.Sets() {
		for _, c := range cat.BySet(meta.SetName) {
			if c.CardType != card.TypePokemon {
				continue
			}
			rows = append(rows, row{
				name:  c.Name,
				score: card.ScoreCard(card.ScoreInput{Card: c, LineLength: *lineLength}),
			})
		}
	}
	if *byScore {
		sort.Slice(rows, func(i, j int) bool { return rows[i].score.Score > rows[j].score.Score })
	} else {
		sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	}

	fmt.Printf("\n%-24s %8s %8s %8s %8s  %s\n", "CARD", "HP", "ATTACK", "ABILITY", "SCORE", "CATEGORY")
	for _, r := range rows {
		fmt.Printf("%-24s %8.1f %8.1f %8.1f %8.1f  %s\n",
			r.name,
			r.score.HP.Normalized,
			r.score.Attack.Normalized,
			r.score.Ability.Normalized,
			r.score.Score,
			r.score.Category)
	}
}
