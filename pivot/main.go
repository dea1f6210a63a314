package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"visitpivot/table"
)

func main() {
	inputFile := flag.String("file", "", "Input CSV file (wide by default, long with -to-wide)")
	outputFile := flag.String("out", "", "Output CSV file (default: derived from input filename)")
	key := flag.String("key", "patient_id", "Subject key column")
	toWide := flag.Bool("to-wide", false, "Pivot long to wide instead of wide to long")
	verify := flag.Bool("verify", false, "Pivot the result back and verify the round trip is lossless")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pivot - Reshape a visit table between wide and long

Wide:  one row per subject, repeated-measure fields spread across
       visit-suffixed columns (visit_date_1, visit_date_2, ...).
Long:  one row per subject-visit pair, visit number as a column.

Usage:
  pivot -file wide.csv [-out long.csv] [-verify]
  pivot -file long.csv -to-wide [-out wide.csv]

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(1)
	}

	if *outputFile == "" {
		base := strings.TrimSuffix(*inputFile, filepath.Ext(*inputFile))
		if *toWide {
			*outputFile = base + "_wide.csv"
		} else {
			*outputFile = base + "_long.csv"
		}
	}

	if err := run(*inputFile, *outputFile, *key, *toWide, *verify); err != nil {
		log.Fatal(err)
	}
}

func run(inputFile, outputFile, key string, toWide, verify bool) error {
	start := time.Now()

	in, err := table.ReadCSV(inputFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputFile, err)
	}
	fmt.Printf("Input:  %s (%d rows x %d columns)\n", inputFile, in.NumRows(), in.NumCols())

	var out *table.Table
	if toWide {
		out, err = table.LongToWide(in, key)
	} else {
		out, err = table.WideToLong(in, key)
	}
	if err != nil {
		return fmt.Errorf("pivot: %w", err)
	}

	if err := table.WriteCSV(out, outputFile); err != nil {
		return fmt.Errorf("write %s: %w", outputFile, err)
	}
	fmt.Printf("Output: %s (%d rows x %d columns)\n", outputFile, out.NumRows(), out.NumCols())

	if verify {
		var back *table.Table
		if toWide {
			back, err = table.WideToLong(out, key)
		} else {
			back, err = table.LongToWide(out, key)
		}
		if err != nil {
			return fmt.Errorf("verify: pivot back: %w", err)
		}
		same, err := in.EqualIgnoringOrder(back)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if !same {
			return fmt.Errorf("verify: round trip does not reproduce the input")
		}
		fmt.Println("Verified: round trip preserves every tuple")
	}

	fmt.Printf("\nDone in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
