package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"visitpivot/cohort"
	"visitpivot/table"
)

func main() {
	patients := flag.Int("patients", 50, "Number of patients in the cohort")
	visits := flag.Int("visits", 3, "Number of visits per patient")
	seed := flag.Int64("seed", 1, "Random seed (same seed reproduces the same cohort)")
	outFile := flag.String("out", "visits_wide.csv", "Output wide CSV file")
	longFile := flag.String("long", "", "Also write the long CSV to this path")
	parquetFile := flag.String("parquet", "", "Also write long-shape Parquet (with demographics) to this path")
	xlsxFile := flag.String("xlsx", "", "Also write the wide table as a spreadsheet to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `cohortgen - Generate a synthetic patient-visit cohort

Writes the wide table (one row per patient, visit fields suffixed with
the visit number) and optionally the long table, a Parquet extract, or
a spreadsheet.

Usage:
  cohortgen [-patients N] [-visits N] [-seed N] [-out wide.csv]

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *patients < 1 || *visits < 1 {
		fmt.Fprintln(os.Stderr, "Error: -patients and -visits must be >= 1")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*patients, int32(*visits), *seed, *outFile, *longFile, *parquetFile, *xlsxFile); err != nil {
		log.Fatal(err)
	}
}

func run(patients int, visits int32, seed int64, outFile, longFile, parquetFile, xlsxFile string) error {
	start := time.Now()

	gen := cohort.NewGenerator(seed)
	subjects, records, err := gen.Cohort(patients, visits)
	if err != nil {
		return fmt.Errorf("generate cohort: %w", err)
	}

	wide, err := cohort.WideTable(records, visits)
	if err != nil {
		return fmt.Errorf("build wide table: %w", err)
	}
	if err := table.WriteCSV(wide, outFile); err != nil {
		return fmt.Errorf("write wide csv: %w", err)
	}
	fmt.Printf("Wide:    %s (%d rows x %d columns)\n", outFile, wide.NumRows(), wide.NumCols())

	if longFile != "" {
		long, err := cohort.LongTable(records)
		if err != nil {
			return fmt.Errorf("build long table: %w", err)
		}
		if err := table.WriteCSV(long, longFile); err != nil {
			return fmt.Errorf("write long csv: %w", err)
		}
		fmt.Printf("Long:    %s (%d rows x %d columns)\n", longFile, long.NumRows(), long.NumCols())
	}

	if parquetFile != "" {
		rows, err := cohort.LongRows(subjects, records)
		if err != nil {
			return fmt.Errorf("build parquet rows: %w", err)
		}
		w, err := cohort.NewLongWriter(parquetFile)
		if err != nil {
			return fmt.Errorf("create parquet: %w", err)
		}
		if _, err := w.Write(rows); err != nil {
			w.Close()
			return fmt.Errorf("write parquet: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("close parquet: %w", err)
		}
		fmt.Printf("Parquet: %s (%d rows)\n", parquetFile, len(rows))
	}

	if xlsxFile != "" {
		if err := table.WriteXLSX(wide, xlsxFile, "Cohort"); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		fmt.Printf("XLSX:    %s\n", xlsxFile)
	}

	fmt.Printf("\nDone in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Patients: %d\n", patients)
	fmt.Printf("  Visits:   %d per patient\n", visits)
	fmt.Printf("  Records:  %d\n", len(records))
	return nil
}
