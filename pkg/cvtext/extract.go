// Package cvtext extracts readable text from an uploaded CV, the same
// formats the analysis service reads before matching.
package cvtext

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"

	"github.com/nikogura/jobmatcher/pkg/form"
)

// ErrUnsupported is returned for formats that cannot be read locally.
// Images are OCRed by the service; legacy .doc has no reader here.
var ErrUnsupported = errors.New("no local text extraction for this file type")

// Extract returns the plain text of a CV.
func Extract(f form.File) (text string, err error) {
	switch f.MIMEType {
	case form.MIMETypeText:
		text = string(f.Data)
	case form.MIMETypePDF:
		text, err = extractPDF(f.Data)
	case form.MIMETypeDOCX:
		text, err = extractDOCX(f.Data)
	default:
		err = errors.Wrapf(ErrUnsupported, "%s (%s)", f.Name, f.MIMEType)
		return text, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to extract text from %s", f.Name)
		return text, err
	}

	text = strings.TrimSpace(text)
	return text, err
}

func extractPDF(data []byte) (text string, err error) {
	var reader *pdf.Reader
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to read pdf")
		return text, err
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	text = b.String()
	if strings.TrimSpace(text) == "" {
		err = errors.New("no text content found in pdf")
		return text, err
	}

	return text, err
}

func extractDOCX(data []byte) (text string, err error) {
	var doc *docx.ReplaceDocx
	doc, err = docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to parse docx")
		return text, err
	}
	defer doc.Close()

	text, err = documentXMLText(doc.Editable().GetContent())
	return text, err
}

// documentXMLText collects the character data of a WordprocessingML body,
// one line per paragraph.
func documentXMLText(content string) (text string, err error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var b strings.Builder
	inText := false
	for {
		var token xml.Token
		token, err = decoder.Token()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			err = errors.Wrap(err, "failed to decode document xml")
			return text, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	text = b.String()
	return text, err
}
