// Package annotation normalizes Cloud Vision annotate responses.
//
// Two document shapes are accepted: the batch envelope
//
//	{"responses": [{"textAnnotations": [...], "logoAnnotations": [...], "labelAnnotations": [...]}]}
//
// and the inner response object on its own.
package annotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// ErrEmptyDocument is returned when the input has no bytes to decode.
var ErrEmptyDocument = errors.New("annotation document is empty")

// EntityAnnotation is the subset of a Vision entity we read.
type EntityAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score,omitempty"`
}

// Response is a single image's annotations.
type Response struct {
	TextAnnotations  []EntityAnnotation `json:"textAnnotations"`
	LogoAnnotations  []EntityAnnotation `json:"logoAnnotations"`
	LabelAnnotations []EntityAnnotation `json:"labelAnnotations"`
}

// document decodes either shape; when Responses is empty the embedded
// fields hold the flattened form.
type document struct {
	Responses []Response `json:"responses"`
	Response
}

// Decode parses raw annotation JSON into a RecognitionResult.
func Decode(data []byte) (models.RecognitionResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.RecognitionResult{}, ErrEmptyDocument
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.RecognitionResult{}, fmt.Errorf("decode annotation JSON: %w", err)
	}

	root := doc.Response
	if len(doc.Responses) > 0 {
		root = doc.Responses[0]
	}
	return Adapt(root), nil
}

// Adapt extracts full text and labels from a response. It never fails.
func Adapt(r Response) models.RecognitionResult {
	res := models.RecognitionResult{
		LogoLabels:  descriptions(r.LogoAnnotations),
		ImageLabels: descriptions(r.LabelAnnotations),
	}
	// The first text annotation carries the whole detected text.
	if len(r.TextAnnotations) > 0 {
		res.FullText = r.TextAnnotations[0].Description
	}
	return res
}

func descriptions(entities []EntityAnnotation) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.Description)
	}
	return out
}
