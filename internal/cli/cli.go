// Package cli implements the interactive menu shell. It is thin glue: every
// selection prompts for input, invokes an operation or the exporter and
// reports the result; all failures are recoverable and return to the menu.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/ukane-philemon/srms/internal/export"
	"github.com/ukane-philemon/srms/internal/ops"
	"github.com/ukane-philemon/srms/internal/record"
)

const menu = `
Student Record Management System
1. Add Student
2. Delete Student
3. Search Student
4. Edit / Update Student
5. List All Students
6. Topper & Average
7. Export to PDF
8. Export to CSV
9. Exit
`

const reportTitle = "Student Record Management System - Report"

// Config is the shell configuration.
type Config struct {
	Operations *ops.Operations

	// Renderer may be nil, in which case PDF export reports that the
	// feature is unavailable instead of failing the process.
	Renderer export.Renderer

	ExportFile string
	ReportFile string
}

// Shell runs the menu loop.
type Shell struct {
	cfg Config
	in  *bufio.Scanner
	out io.Writer
	log *logrus.Entry
}

// New creates and returns a new instance of *Shell reading choices from in
// and writing results to out.
func New(cfg Config, in io.Reader, out io.Writer) (*Shell, error) {
	if cfg.Operations == nil {
		return nil, errors.New("operations are required")
	}

	return &Shell{
		cfg: cfg,
		in:  bufio.NewScanner(in),
		out: out,
		log: logrus.StandardLogger().WithField("type", "cli.Shell"),
	}, nil
}

// Run shows the menu and dispatches selections until the user exits or input
// is exhausted.
func (sh *Shell) Run() {
	for {
		fmt.Fprint(sh.out, menu)

		choice, ok := sh.prompt("Choose an option (1-9): ")
		if !ok {
			fmt.Fprintln(sh.out, "\nInput closed. Exiting.")
			return
		}

		switch choice {
		case "1":
			sh.addStudent()
		case "2":
			sh.deleteStudent()
		case "3":
			sh.searchStudents()
		case "4":
			sh.editStudent()
		case "5":
			sh.listStudents()
		case "6":
			sh.topperAndAverage()
		case "7":
			sh.exportPDF()
		case "8":
			sh.exportCSV()
		case "9":
			fmt.Fprintln(sh.out, "Exiting. Goodbye!")
			return
		default:
			fmt.Fprintln(sh.out, "Invalid option. Enter a number 1-9.")
		}
	}
}

func (sh *Shell) addStudent() {
	fmt.Fprintf(sh.out, "Generated Roll Number: %s\n", sh.cfg.Operations.NextRoll())

	name, ok := sh.prompt("Enter Name: ")
	if !ok || name == "" {
		fmt.Fprintln(sh.out, "Name cannot be empty. Aborting add.")
		return
	}

	scoreInput, ok := sh.prompt(fmt.Sprintf("Enter Score (%d-%d): ", record.MinScore, record.MaxScore))
	if !ok {
		return
	}
	score, err := record.ParseScore(scoreInput)
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid score. Please use a number. Aborting add.")
		return
	}

	r, err := sh.cfg.Operations.Enroll(name, score)
	if err != nil {
		sh.reportError("add", err)
		return
	}

	fmt.Fprintf(sh.out, "Student added successfully with Roll %s.\n", r.Roll)
}

func (sh *Shell) deleteStudent() {
	roll, ok := sh.prompt("Enter Roll Number to delete: ")
	if !ok || roll == "" {
		fmt.Fprintln(sh.out, "Empty roll. Aborting delete.")
		return
	}

	r, err := sh.cfg.Operations.Get(roll)
	if err != nil {
		sh.reportError("delete", err)
		return
	}

	confirm, ok := sh.prompt(fmt.Sprintf("Are you sure you want to delete %s (roll %s)? [y/N]: ", r.Name, r.Roll))
	if !ok || strings.ToLower(confirm) != "y" {
		fmt.Fprintln(sh.out, "Delete cancelled.")
		return
	}

	err = sh.cfg.Operations.Delete(roll)
	if err != nil {
		sh.reportError("delete", err)
		return
	}

	fmt.Fprintln(sh.out, "Student deleted and changes saved.")
}

func (sh *Shell) searchStudents() {
	query, ok := sh.prompt("Search by Roll or Name (partial allowed): ")
	if !ok || query == "" {
		fmt.Fprintln(sh.out, "Empty query. Aborting search.")
		return
	}

	results, err := sh.cfg.Operations.Search(query)
	if err != nil {
		sh.reportError("search", err)
		return
	}

	if len(results) == 0 {
		fmt.Fprintln(sh.out, "No matching student records found.")
		return
	}

	fmt.Fprintf(sh.out, "Found %d result(s):\n", len(results))
	sh.printTable(results)
}

func (sh *Shell) editStudent() {
	roll, ok := sh.prompt("Enter Roll Number to edit: ")
	if !ok || roll == "" {
		fmt.Fprintln(sh.out, "Empty roll. Aborting edit.")
		return
	}

	current, err := sh.cfg.Operations.Get(roll)
	if err != nil {
		sh.reportError("edit", err)
		return
	}

	fmt.Fprintf(sh.out, "Editing %s (Roll %s)\n", current.Name, current.Roll)

	// Empty input keeps the current value.
	var name *string
	newName, ok := sh.prompt(fmt.Sprintf("Enter new name [%s] (press Enter to keep): ", current.Name))
	if !ok {
		return
	}
	if newName != "" {
		name = &newName
	}

	var score *float64
	scoreInput, ok := sh.prompt(fmt.Sprintf("Enter new score [%s] (press Enter to keep): ", record.FormatScore(current.Score)))
	if !ok {
		return
	}
	if scoreInput != "" {
		newScore, err := record.ParseScore(scoreInput)
		if err != nil {
			fmt.Fprintln(sh.out, "Invalid score. Aborting edit.")
			return
		}
		score = &newScore
	}

	_, err = sh.cfg.Operations.Update(roll, name, score)
	if err != nil {
		sh.reportError("edit", err)
		return
	}

	fmt.Fprintln(sh.out, "Student updated and saved.")
}

func (sh *Shell) listStudents() {
	records := sh.cfg.Operations.ListByRoll()
	if len(records) == 0 {
		fmt.Fprintln(sh.out, "No student records yet.")
		return
	}

	sh.printTable(records)
	fmt.Fprintf(sh.out, "Total students: %d\n", len(records))
}

func (sh *Shell) topperAndAverage() {
	summary, err := sh.cfg.Operations.Statistics()
	if err != nil {
		if errors.Is(err, ops.ErrEmptyCollection) {
			fmt.Fprintln(sh.out, "No records to calculate topper/average.")
		} else {
			sh.reportError("statistics", err)
		}
		return
	}

	fmt.Fprintf(sh.out, "Average Score: %.2f\n", summary.Average)
	fmt.Fprintf(sh.out, "Top Score: %s\n", record.FormatScore(summary.HighestScore))
	fmt.Fprintln(sh.out, "Topper(s):")
	for _, t := range summary.Toppers {
		fmt.Fprintf(sh.out, " - %s (Roll %s), %s\n", t.Name, t.Roll, record.FormatScore(t.Score))
	}
}

func (sh *Shell) exportPDF() {
	records := sh.cfg.Operations.List()
	if len(records) == 0 {
		fmt.Fprintln(sh.out, "No records to export.")
		return
	}

	meta, err := export.Document(sh.cfg.Renderer, sh.cfg.ReportFile, reportTitle, records)
	if err != nil {
		if errors.Is(err, export.ErrFeatureUnavailable) {
			fmt.Fprintln(sh.out, "PDF rendering is not available in this build.")
		} else {
			sh.reportError("export-pdf", err)
		}
		return
	}

	fmt.Fprintf(sh.out, "PDF report %s generated: %s\n", meta.ReportID, sh.cfg.ReportFile)
}

func (sh *Shell) exportCSV() {
	records := sh.cfg.Operations.List()
	if len(records) == 0 {
		fmt.Fprintln(sh.out, "No records to export.")
		return
	}

	err := export.CSV(sh.cfg.ExportFile, records)
	if err != nil {
		sh.reportError("export-csv", err)
		return
	}

	fmt.Fprintf(sh.out, "Exported to CSV file: %s\n", sh.cfg.ExportFile)
}

func (sh *Shell) printTable(records []*record.Record) {
	table := tablewriter.NewWriter(sh.out)
	table.SetHeader(export.DocumentHeaders)
	for _, r := range records {
		table.Append([]string{r.Roll, r.Name, record.FormatScore(r.Score), ops.Grade(r.Score)})
	}
	table.Render()
}

func (sh *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// reportError prints user-facing errors as-is and logs unexpected ones. The
// menu loop always continues.
func (sh *Shell) reportError(op string, err error) {
	for _, userErr := range []error{
		record.ErrNotFound,
		record.ErrDuplicateRoll,
		record.ErrInvalidRecord,
		ops.ErrEmptyCollection,
	} {
		if errors.Is(err, userErr) {
			fmt.Fprintf(sh.out, "%v\n", err)
			return
		}
	}

	sh.log.WithField("op", op).Errorf("Operation failed: %v", err)
	fmt.Fprintf(sh.out, "Something went wrong: %v\n", err)
}
