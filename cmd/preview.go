package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/jobmatcher/pkg/cvtext"
	"github.com/nikogura/jobmatcher/pkg/form"
)

//nolint:gochecknoglobals // Cobra boilerplate
var previewMaxChars int

//nolint:gochecknoglobals // Cobra boilerplate
var previewCmd = &cobra.Command{
	Use:   "preview <cv-file>",
	Short: "Check a CV file before submitting it",
	Long: `Checks a CV file against the upload rules (type and 10MB limit) and prints
the text that can be read from it locally.

PDF, DOCX and plain text files are extracted. Images and legacy .doc files
are accepted for upload but have no local preview.

Example:
  jobmatcher preview ~/cv.pdf
  jobmatcher preview ~/cv.docx --max-chars 0`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewMaxChars, "max-chars", 2000, "Maximum characters of text to print (0 for all)")
}

func runPreview(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true

	var f form.File
	f, err = form.LoadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", f.Name)
	fmt.Printf("Size: %s\n", humanize.IBytes(uint64(f.Size)))
	fmt.Printf("Type: %s\n", f.MIMEType)

	err = form.ValidateFile(f)
	if err != nil {
		return err
	}

	var text string
	text, err = cvtext.Extract(f)
	if errors.Is(err, cvtext.ErrUnsupported) {
		fmt.Println("No local preview for this file type; it will be read by the service.")
		err = nil
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(previewText(text, previewMaxChars))
	return err
}

// previewText cuts text to at most maxChars runes.
func previewText(text string, maxChars int) (result string) {
	result = text
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return result
	}
	result = string(runes[:maxChars]) + fmt.Sprintf("\n... (%d more characters)", len(runes)-maxChars)
	return result
}
