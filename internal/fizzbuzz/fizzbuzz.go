package fizzbuzz

import (
	"fmt"
	"io"
	"strconv"
)

// Line returns the FizzBuzz word for n: "FizzBuzz" for multiples of both
// three and five, "Fizz" for multiples of three, "Buzz" for multiples of
// five, and the decimal form of n otherwise.
func Line(n int) string {
	switch {
	case n%15 == 0:
		return "FizzBuzz"
	case n%3 == 0:
		return "Fizz"
	case n%5 == 0:
		return "Buzz"
	default:
		return strconv.Itoa(n)
	}
}

// Write prints one line per integer in [from, to] to w. An inverted range
// prints nothing.
func Write(w io.Writer, from, to int) error {
	for n := from; n <= to; n++ {
		if _, err := fmt.Fprintln(w, Line(n)); err != nil {
			return fmt.Errorf("failed to write line for %d: %w", n, err)
		}
	}
	return nil
}
