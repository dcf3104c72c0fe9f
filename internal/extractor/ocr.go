package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// ocrLanguages covers Spanish and English notifications.
const ocrLanguages = "spa+eng"

// IsOCRAvailable reports whether the tesseract binary is on PATH.
func IsOCRAvailable() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// FromImage runs Tesseract on a screenshot or photo and returns a
// RecognitionResult carrying only FullText. Logo and label detection need
// the annotation service, so both label lists are empty.
// Requires: tesseract (tesseract-ocr) with the spa and eng language data.
func FromImage(filePath string) (models.RecognitionResult, error) {
	text, err := recognizeImage(filePath)
	if err != nil {
		return models.RecognitionResult{}, err
	}
	return models.RecognitionResult{FullText: text, LogoLabels: []string{}, ImageLabels: []string{}}, nil
}

func recognizeImage(filePath string) (string, error) {
	if !IsOCRAvailable() {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr)")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("image not readable: %w", err)
	}

	// PSM 6 = assume a single uniform block of text (notification screenshots)
	cmd := exec.Command("tesseract", filePath, "stdout", "-l", ocrLanguages, "--psm", "6")
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("tesseract failed: %w (stderr: %s)", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("tesseract failed: %w", err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("tesseract produced no text from %s", filePath)
	}
	return text, nil
}
