// Command zil is the adventure-language runtime CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/keithmackay/zork1-sub000/pkg/zil"
)

const usage = `zil

Usage:
  zil [options] [FILE]
  zil -h

Arguments:
  FILE  Game source file to load before running.

Options:
  -e, --eval=FORM        Evaluate one form and exit.
  --db=PATH              Record commands to a SQLite transcript.
  --replay               Replay the transcript at --db and exit.
  --seed=SEED            Seed for RANDOM [default: 1].
  -h, --help             Display this help.

If stdin is a TTY an interactive command loop starts after the game
file loads; otherwise commands are read from stdin one form per line.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	seed, err := opts.Int("--seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad seed: %v\n", err)
		os.Exit(1)
	}

	rtOpts := []zil.Option{zil.WithRandomSeed(int64(seed))}
	dbPath, _ := opts.String("--db")
	if dbPath != "" {
		rtOpts = append(rtOpts, zil.WithSQLiteTranscript(dbPath))
	}

	runtime := zil.New(rtOpts...)
	defer runtime.Close()

	if file, _ := opts.String("FILE"); file != "" {
		if err := runtime.LoadFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
			os.Exit(1)
		}
	}

	if replay, _ := opts.Bool("--replay"); replay {
		if err := runReplay(runtime, dbPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if form, _ := opts.String("--eval"); form != "" {
		result, err := runtime.Eval(form)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if result != "" {
			fmt.Println(result)
		}
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		runREPL(runtime)
		return
	}
	runBasicLoop(runtime)
}

// runReplay re-runs the transcript recorded at dbPath against the
// freshly loaded runtime and echoes its output.
func runReplay(runtime *zil.Runtime, dbPath string) error {
	if runtime.Transcript() == nil {
		return fmt.Errorf("--replay needs --db")
	}
	entries, err := runtime.Transcript().All()
	if err != nil {
		return err
	}
	out, err := runtime.Replay(entries)
	if out != "" {
		io.WriteString(os.Stdout, out)
	}
	return err
}
