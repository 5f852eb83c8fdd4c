package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/nikogura/jobmatcher/pkg/analyzer"
	"github.com/nikogura/jobmatcher/pkg/config"
	"github.com/nikogura/jobmatcher/pkg/form"
	"github.com/nikogura/jobmatcher/pkg/renderer"
	"github.com/nikogura/jobmatcher/pkg/report"
	"github.com/nikogura/jobmatcher/pkg/textsrc"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeSkills string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeDesiredJobs string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeFile string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeInteractive bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeMarkdownOut string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzePDFOut string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeEndpoint string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeTimeout time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze your job readiness",
	Long: `Send your skills, desired roles and optionally your CV to the job matching
service and print the readiness report.

Skills or a CV is required. Skills must be at least 3 characters. The CV may
be a PDF, Word document, image or text file of at most 10MB.

Skills and desired roles can be given as:
- Literal text (e.g., "Go, Kubernetes, PostgreSQL")
- A file reference (e.g., @skills.txt)
- A URL (e.g., a job posting for --desired-jobs)

Example:
  jobmatcher analyze --skills "Go, Docker" --desired-jobs "Platform Engineer"
  jobmatcher analyze --file ~/cv.pdf --desired-jobs @roles.txt --markdown-out report.md
  jobmatcher analyze --interactive`,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeSkills, "skills", "", "Your skills (text, @file or URL)")
	analyzeCmd.Flags().StringVar(&analyzeDesiredJobs, "desired-jobs", "", "Desired job roles (text, @file or URL)")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "CV/resume file ("+strings.Join(form.AcceptedExtensions(), ", ")+")")
	analyzeCmd.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "Prompt for each field")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw report JSON instead of the rendered report")
	analyzeCmd.Flags().StringVar(&analyzeMarkdownOut, "markdown-out", "", "Also write the report as Markdown to this file")
	analyzeCmd.Flags().StringVar(&analyzePDFOut, "pdf-out", "", "Also export the report as PDF via pandoc")
	analyzeCmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "Analysis service base URL (default from config)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Request timeout (default from config, 30s)")
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true
	ctx := context.Background()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	client := newAnalyzerClient(cfg)
	driver := form.NewDriver(client)
	attachSpinner(driver)

	if analyzeInteractive {
		err = runInteractive(ctx, driver, bufio.NewReader(os.Stdin))
	} else {
		err = runFromFlags(ctx, driver)
	}
	if err != nil {
		return err
	}

	err = presentReport(ctx, cfg, *driver.State().Result)
	return err
}

func newAnalyzerClient(cfg config.Config) (client *analyzer.Client) {
	endpoint := cfg.Endpoint
	if analyzeEndpoint != "" {
		endpoint = analyzeEndpoint
	}

	timeout := cfg.GetTimeout()
	if analyzeTimeout > 0 {
		timeout = analyzeTimeout
	}

	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", analyzer.Endpoint(endpoint))
		fmt.Fprintf(os.Stderr, "Timeout: %s\n", timeout)
	}

	client = analyzer.NewClient(endpoint, timeout)
	client.SetLogger(newLogger())
	return client
}

// attachSpinner shows progress on stderr while a submission is in flight.
func attachSpinner(driver *form.Driver) {
	s := newSpinner("Analyzing...", os.Stderr)
	driver.OnChange(func(state form.State) {
		if state.Loading {
			s.start()
			return
		}
		s.stopSpinner()
	})
}

func runFromFlags(ctx context.Context, driver *form.Driver) (err error) {
	var skills, desiredJobs string
	skills, err = resolveText(ctx, analyzeSkills)
	if err != nil {
		err = errors.Wrap(err, "failed to read skills")
		return err
	}

	desiredJobs, err = resolveText(ctx, analyzeDesiredJobs)
	if err != nil {
		err = errors.Wrap(err, "failed to read desired jobs")
		return err
	}

	driver.Dispatch(ctx, form.SkillsChanged{Text: skills})
	driver.Dispatch(ctx, form.DesiredJobsChanged{Text: desiredJobs})

	if analyzeFile != "" {
		err = selectFile(ctx, driver, analyzeFile)
		if err != nil {
			return err
		}
	}

	state := driver.Dispatch(ctx, form.SubmitRequested{})
	err = submissionError(state)
	return err
}

func runInteractive(ctx context.Context, driver *form.Driver, in *bufio.Reader) (err error) {
	fmt.Println("Job Readiness Analyzer")

	for {
		var skills, desiredJobs string
		skills, err = promptForInput(in, "Your Skills", "e.g., JavaScript, HTML, CSS")
		if err != nil {
			return err
		}

		desiredJobs, err = promptForInput(in, "Desired Job Roles", "e.g., Frontend Developer, UI Designer")
		if err != nil {
			return err
		}

		skills, err = resolveText(ctx, skills)
		if err != nil {
			fmt.Println(err)
			continue
		}

		desiredJobs, err = resolveText(ctx, desiredJobs)
		if err != nil {
			fmt.Println(err)
			continue
		}

		driver.Dispatch(ctx, form.SkillsChanged{Text: skills})
		driver.Dispatch(ctx, form.DesiredJobsChanged{Text: desiredJobs})

		err = promptForFile(ctx, driver, in)
		if err != nil {
			return err
		}

		state := driver.Dispatch(ctx, form.SubmitRequested{})
		if state.Outcome == form.OutcomeValidationFailed {
			fmt.Println(state.Error)
			continue
		}

		err = submissionError(state)
		return err
	}
}

// promptForFile asks for a CV until an acceptable file or a blank line is given.
func promptForFile(ctx context.Context, driver *form.Driver, in *bufio.Reader) (err error) {
	hint := strings.Join(form.AcceptedExtensions(), ", ") + "; blank to skip"
	if current := driver.State().File; current != nil {
		hint = strings.Join(form.AcceptedExtensions(), ", ") + "; blank keeps " + current.Name
	}

	for {
		var path string
		path, err = promptForInput(in, "CV/resume file", hint)
		if err != nil || path == "" {
			return err
		}

		selectErr := selectFile(ctx, driver, path)
		if selectErr == nil {
			return err
		}
		fmt.Println(selectErr)
	}
}

func promptForInput(in *bufio.Reader, label, hint string) (input string, err error) {
	fmt.Printf("%s (%s): ", label, hint)

	line, readErr := in.ReadString('\n')
	if readErr != nil && !(errors.Is(readErr, io.EOF) && line != "") {
		err = errors.Wrapf(readErr, "failed to read %s", strings.ToLower(label))
		return input, err
	}

	input = strings.TrimSpace(line)
	return input, err
}

func resolveText(ctx context.Context, input string) (text string, err error) {
	if strings.TrimSpace(input) == "" {
		return text, err
	}
	text, err = textsrc.FetchWithContext(ctx, input)
	return text, err
}

// selectFile loads a file from disk and offers it to the form.
func selectFile(ctx context.Context, driver *form.Driver, path string) (err error) {
	var f form.File
	f, err = form.LoadFile(path)
	if err != nil {
		return err
	}

	state := driver.Dispatch(ctx, form.FileSelected{File: &f})
	if state.Error != "" {
		err = errors.Errorf("%s: %s", f.Name, state.Error)
		return err
	}

	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Selected %s (%s, %d bytes)\n", f.Name, f.MIMEType, f.Size)
	}

	return err
}

// submissionError turns a finished submission into the command's error.
func submissionError(state form.State) (err error) {
	switch {
	case state.Error != "":
		err = errors.New(state.Error)
	case state.Result == nil:
		err = errors.New(analyzer.MessageEmpty)
	case state.Result.HasError():
		err = errors.Errorf("analysis failed: %s", state.Result.ErrorText())
	}
	return err
}

func presentReport(ctx context.Context, cfg config.Config, rep report.Report) (err error) {
	if analyzeJSON {
		fmt.Print(string(pretty.Pretty([]byte(rep.Raw))))
	} else {
		fmt.Print(renderer.Text(rep))
	}

	if analyzeMarkdownOut == "" && analyzePDFOut == "" {
		return err
	}

	err = exportReport(ctx, cfg, rep)
	return err
}

func exportReport(ctx context.Context, cfg config.Config, rep report.Report) (err error) {
	markdownPath := outputPath(cfg.Defaults.OutputDir, analyzeMarkdownOut)
	keepMarkdown := markdownPath != ""

	if !keepMarkdown {
		pdfPath := outputPath(cfg.Defaults.OutputDir, analyzePDFOut)
		markdownPath = strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".md"
	}

	err = renderer.WriteMarkdown(renderer.Markdown(rep), markdownPath)
	if err != nil {
		err = errors.Wrap(err, "failed to write report markdown")
		return err
	}

	if keepMarkdown {
		fmt.Fprintf(os.Stderr, "Report markdown saved at: %s\n", markdownPath)
	}

	if analyzePDFOut == "" {
		return err
	}

	pdfPath := outputPath(cfg.Defaults.OutputDir, analyzePDFOut)
	renderErr := renderer.RenderPDF(ctx, markdownPath, pdfPath, cfg.Pandoc.TemplatePath)
	if renderErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to render report PDF: %v\n", renderErr)
		fmt.Fprintf(os.Stderr, "Report markdown saved at: %s\n", markdownPath)
		return err
	}

	fmt.Fprintf(os.Stderr, "Report PDF saved at: %s\n", pdfPath)

	if !keepMarkdown {
		cleanupErr := renderer.CleanupMarkdown(markdownPath)
		if cleanupErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to clean up markdown file: %v\n", cleanupErr)
		}
	}

	return err
}

// outputPath places relative paths under the configured output directory.
func outputPath(outputDir, path string) (result string) {
	result = path
	if result == "" || filepath.IsAbs(result) || outputDir == "" {
		return result
	}
	result = filepath.Join(outputDir, result)
	return result
}
