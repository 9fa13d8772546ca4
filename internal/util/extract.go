package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type, only PDF and DOCX are accepted")
	ErrNoTextExtracted     = errors.New("no text could be extracted from the document")
)

// FileTypeOf returns "pdf" or "docx" for a supported file name, "" otherwise.
func FileTypeOf(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	default:
		return ""
	}
}

// ExtractDocumentText returns the plain text of a PDF or DOCX upload along
// with its normalized file type.
func ExtractDocumentText(ctx context.Context, fileName string, data []byte) (string, string, error) {
	fileType := FileTypeOf(fileName)

	var (
		text string
		err  error
	)
	switch fileType {
	case "pdf":
		text, err = ExtractPDFText(ctx, data)
	case "docx":
		text, err = ExtractDOCXText(data)
	default:
		return "", "", ErrUnsupportedFileType
	}
	if err != nil {
		return "", fileType, err
	}
	if strings.TrimSpace(text) == "" {
		return "", fileType, ErrNoTextExtracted
	}
	return text, fileType, nil
}

// ExtractPDFText reads the PDF text layer and falls back to tesseract OCR
// for scanned documents.
func ExtractPDFText(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	if result := strings.TrimSpace(fullText.String()); result != "" {
		return result, nil
	}
	return extractPDFOCR(ctx, doc)
}

func extractPDFOCR(ctx context.Context, doc *fitz.Document) (string, error) {
	if err := checkTesseract(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTextExtracted, err)
	}

	var fullText strings.Builder
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			lastErr = fmt.Errorf("page %d: failed to encode PNG: %w", n+1, err)
			continue
		}

		cmd := exec.CommandContext(ctx, "tesseract", "stdin", "stdout", "-l", "eng")
		cmd.Stdin = &buf
		out, err := cmd.Output()
		if err != nil {
			lastErr = fmt.Errorf("page %d: tesseract error: %w", n+1, err)
			continue
		}

		if pageText := strings.TrimSpace(string(out)); pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", ErrNoTextExtracted
	}
	return result, nil
}

func checkTesseract() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return fmt.Errorf("tesseract not found: %w", err)
	}
	return nil
}
