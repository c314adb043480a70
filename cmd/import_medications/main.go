// Command import_medications runs the medication spreadsheet pipeline
// against a local file, without the HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"hospitalserver/classification"
	"hospitalserver/database"
	"hospitalserver/importer"
	"hospitalserver/server/services"
	"hospitalserver/server/types"
)

func main() {
	dbPath := flag.String("db", "pharmacy.db", "path to the SQLite database")
	encoding := flag.String("encoding", "", "text encoding for CSV files (utf-8, windows-1251, windows-1252)")
	verbose := flag.Bool("v", false, "print every row outcome, not just errors")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <spreadsheet file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	sheets, err := importer.ReadUploadFile(file, path, *encoding)
	if err != nil {
		log.Fatalf("Failed to read workbook: %v", err)
	}

	db, err := database.NewServiceDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	classifier := classification.NewCategoryClassifier(nil)
	ruleService := services.NewRuleService(db, classifier)
	if err := ruleService.Reload(); err != nil {
		log.Fatalf("Failed to load category rules: %v", err)
	}

	service := services.NewMedicationImportService(db, classifier)
	summary, err := service.Run(sheets, path)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, outcome := range summary.Outcomes {
		if !*verbose && outcome.Status == types.StatusSuccess {
			continue
		}
		fmt.Printf("[%s] sheet %q row %d: %s (%s)\n",
			outcome.Status, outcome.Sheet, outcome.Row, outcome.Name, outcome.Message)
	}

	fmt.Printf("\nprocessed=%d success=%d errors=%d skipped=%d\n",
		summary.ProcessedCount, summary.SuccessCount, summary.ErrorCount, summary.SkippedCount)
	if summary.ErrorCount > 0 {
		os.Exit(1)
	}
}
