package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/keithmackay/zork1-sub000/pkg/zil"
)

// runREPL is the interactive command loop. Each line is one form; it
// runs as a turn, so the scheduler ticks after it.
func runREPL(runtime *zil.Runtime) {
	fmt.Println("zil runtime (Ctrl+D to exit)")

	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)

	for {
		line, err := cli.Prompt("> ")
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		default:
			fmt.Println()
			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		cli.AppendHistory(line)

		result, err := runtime.Command(line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if result != "" && result != "<>" {
			fmt.Println(result)
		}
	}
}

// runBasicLoop handles piped input, one form per line.
func runBasicLoop(runtime *zil.Runtime) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		result, err := runtime.Command(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if result != "" && result != "<>" {
			fmt.Println(result)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}
}
