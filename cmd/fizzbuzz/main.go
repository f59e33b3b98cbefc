package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Checker-Finance/valuation/internal/fizzbuzz"
)

func main() {
	var from, to int
	if _, err := fmt.Fscan(bufio.NewReader(os.Stdin), &from, &to); err != nil {
		fmt.Fprintln(os.Stderr, "fizzbuzz: expected two integers on stdin:", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	if err := fizzbuzz.Write(out, from, to); err != nil {
		fmt.Fprintln(os.Stderr, "fizzbuzz:", err)
		os.Exit(1)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "fizzbuzz:", err)
		os.Exit(1)
	}
}
