package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	reportLineTemplateConstant   = "%-*s  %s\n"
	reportDetailIndentConstant   = "  "
	reportDetailTemplateConstant = "%s%s\n"
)

// Reporter emits formatted report lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, args...)
}

// ReportWriter renders one aligned block per repository: a name column padded
// to the longest name followed by a message, with multi-line command output
// indented underneath.
type ReportWriter struct {
	reporter   Reporter
	nameColumn int
}

// NewReportWriter sizes the name column for the supplied repository names.
func NewReportWriter(reporter Reporter, repositoryNames []string) *ReportWriter {
	longestNameLength := 0
	for _, repositoryName := range repositoryNames {
		if len(repositoryName) > longestNameLength {
			longestNameLength = len(repositoryName)
		}
	}

	return &ReportWriter{reporter: reporter, nameColumn: longestNameLength}
}

// Line writes a single aligned repository report line.
func (writer *ReportWriter) Line(repositoryName string, message string) {
	writer.reporter.Printf(reportLineTemplateConstant, writer.nameColumn, repositoryName, message)
}

// Block writes the first output line beside the repository name and indents
// the remaining lines underneath.
func (writer *ReportWriter) Block(repositoryName string, commandOutput string) {
	outputLines := strings.Split(strings.TrimRight(commandOutput, "\n"), "\n")
	writer.Line(repositoryName, strings.TrimSpace(outputLines[0]))
	if len(outputLines) > 1 {
		writer.Detail(strings.Join(outputLines[1:], "\n"))
	}
}

// Detail writes command output indented beneath a report line, one indented
// line per non-empty output line.
func (writer *ReportWriter) Detail(commandOutput string) {
	for _, outputLine := range strings.Split(strings.TrimRight(commandOutput, "\n"), "\n") {
		if len(strings.TrimSpace(outputLine)) == 0 {
			continue
		}
		writer.reporter.Printf(reportDetailTemplateConstant, reportDetailIndentConstant, outputLine)
	}
}
