package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/regi/internal/game"
	"github.com/peterkuimelis/regi/internal/log"
)

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:], os.Stdout)
	case "decode":
		err = runDecode(os.Args[2:], os.Stdout)
	case "random":
		err = runRandom(os.Args[2:], os.Stdout)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  regi play [--tables FILE] [--table N] [--strategies a,b,...] [--games G] [--seed S] [--log text|json|none]")
	fmt.Println("  regi decode SNAPSHOT")
	fmt.Println("  regi random [--players P] [--seed S]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Simulate games with strategy-driven seats")
	fmt.Println("  decode  Parse a snapshot string and describe the table")
	fmt.Println("  random  Deal a randomized mid-game table and print its snapshot")
	fmt.Println()
	fmt.Println("REGI_TABLE and REGI_SEED (also read from .env) set the defaults for --tables and --seed.")
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("REGI_SEED"), 10, 64)
	if err != nil {
		return 1
	}
	return seed
}

// loadTable picks the table to play: an inline one built from a strategy
// list, or the Nth entry of the table file.
func loadTable(path string, n int, strategies string) (game.Table, error) {
	if strategies == "" {
		return game.TableByNumber(path, n)
	}
	t := game.Table{Name: "inline", Games: 1}
	for _, name := range strings.Split(strategies, ",") {
		t.Players = append(t.Players, game.Seat{Strategy: strings.TrimSpace(name)})
	}
	return t, t.Validate()
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func newLogger(kind string, w io.Writer, base logrus.Fields) (log.EventLogger, error) {
	switch kind {
	case "text":
		return log.NewTextLogger(w, log.EventState), nil
	case "json":
		return log.NewJSONLogger(w, base), nil
	case "none":
		return log.NopLogger{}, nil
	}
	return nil, fmt.Errorf("unknown log format %q (want text, json or none)", kind)
}

func runPlay(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	tablesFile := fs.String("tables", envDefault("REGI_TABLE", "tables.yaml"), "path to tables file")
	tableNum := fs.Int("table", 1, "table number to play (from the tables file)")
	strategies := fs.String("strategies", "", "comma-separated seat strategies; overrides the tables file")
	games := fs.Int("games", 0, "number of games (default: the table's count)")
	seed := fs.Int64("seed", envSeed(), "base seed")
	logKind := fs.String("log", "text", "event output: text, json or none")
	fs.Parse(args)

	t, err := loadTable(*tablesFile, *tableNum, *strategies)
	if err != nil {
		return err
	}
	if flagSet(fs, "seed") || t.Seed == 0 {
		t.Seed = *seed
	}
	if *games > 0 {
		t.Games = *games
	}
	if t.Games == 0 {
		t.Games = 1
	}

	runID := uuid.NewString()
	summary := newSummary()
	for n := 0; n < t.Games; n++ {
		logger, err := newLogger(*logKind, out, logrus.Fields{"run": runID, "game": n})
		if err != nil {
			return err
		}
		g, err := t.NewGame(n, logger)
		if err != nil {
			return fmt.Errorf("game %d: %w", n, err)
		}
		reason, err := g.Run()
		if err != nil {
			return fmt.Errorf("game %d: %w", n, err)
		}
		summary.add(reason, g)
	}

	summary.entry().WithFields(logrus.Fields{
		"run":   runID,
		"table": t.Name,
		"seats": len(t.Players),
		"seed":  t.Seed,
	}).Info("run complete")
	return nil
}

func runDecode(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("decode takes exactly one snapshot argument")
	}
	s, err := game.DecodeSnapshot(strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	describe(out, s)
	return nil
}

func runRandom(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("random", flag.ExitOnError)
	players := fs.Int("players", 2, "number of seats")
	seed := fs.Int64("seed", envSeed(), "random seed")
	fs.Parse(args)

	g := game.NewGame(game.GameConfig{Logger: log.NopLogger{}, Seed: *seed})
	for i := 0; i < *players; i++ {
		if _, err := g.AddPlayer(game.NewDamageStrategy()); err != nil {
			return err
		}
	}
	if err := g.InitRandom(); err != nil {
		return err
	}
	s := g.Snapshot()
	fmt.Fprintln(out, s.Encode())
	describe(out, s)
	return nil
}
