package cipher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ErrEmptyInput is returned when there is nothing to inspect.
var ErrEmptyInput = errors.New("empty input")

// MinConfidence is the cut-off below which detections are discarded.
const MinConfidence = 0.3

var (
	morsePattern  = regexp.MustCompile(`^[.\-/\s]+$`)
	binaryToken   = regexp.MustCompile(`^[01]{8,}$`)
	hexPattern    = regexp.MustCompile(`^[0-9A-Fa-f]{2,}(\s+[0-9A-Fa-f]{2,})*$`)
	digitsOnly    = regexp.MustCompile(`^[0-9\s]+$`)
	a1z26Pattern  = regexp.MustCompile(`^\d{1,2}([.\s,;]+\d{1,2})*$`)
	percentEscape = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
)

// DetectionResult is one candidate scheme for a piece of text.
type DetectionResult struct {
	Scheme     Scheme  `json:"scheme"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Reasoning  string  `json:"reasoning"`
}

// Detector guesses which scheme produced a piece of text.
type Detector struct{}

// NewDetector creates a new detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect ranks candidate schemes for text, highest confidence first.
func (d *Detector) Detect(ctx context.Context, text string) ([]DetectionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []DetectionResult
	results = append(results, d.detectInvisible(text)...)
	results = append(results, d.detectZalgo(text)...)
	results = append(results, d.detectMorse(text)...)
	results = append(results, d.detectBinary(text)...)
	results = append(results, d.detectHex(text)...)
	results = append(results, d.detectA1Z26(text)...)
	results = append(results, d.detectEmoji(text)...)
	results = append(results, d.detectBase64(text)...)
	results = append(results, d.detectURL(text)...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	filtered := results[:0]
	for _, r := range results {
		if r.Confidence >= MinConfidence {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// SupportedSchemes returns the schemes this detector can identify.
func (d *Detector) SupportedSchemes() []Scheme {
	return []Scheme{
		SchemeInvisible, SchemeZalgo, SchemeMorse, SchemeBinary, SchemeHex,
		SchemeA1Z26, SchemeEmoji, SchemeBase64, SchemeURL,
	}
}

func (d *Detector) detectInvisible(text string) []DetectionResult {
	if !HasHiddenPayload(text) {
		return nil
	}
	return []DetectionResult{{
		Scheme:     SchemeInvisible,
		Confidence: 0.99,
		Reasoning:  "Contains zero-width payload characters",
	}}
}

func (d *Detector) detectZalgo(text string) []DetectionResult {
	marks := CountCombiningMarks(text)
	if marks == 0 {
		return nil
	}
	density := float64(marks) / float64(utf8.RuneCountInString(text))
	return []DetectionResult{{
		Scheme:     SchemeZalgo,
		Confidence: math.Min(0.5+density, 0.95),
		Reasoning:  fmt.Sprintf("Contains %d combining marks", marks),
	}}
}

func (d *Detector) detectMorse(text string) []DetectionResult {
	trimmed := strings.TrimSpace(text)
	if !morsePattern.MatchString(trimmed) || !strings.ContainsAny(trimmed, ".-") {
		return nil
	}
	confidence := 0.85
	if strings.Contains(trimmed, "/") {
		confidence = 0.95
	}
	return []DetectionResult{{
		Scheme:     SchemeMorse,
		Confidence: confidence,
		Reasoning:  "Consists of dots, dashes and word separators",
	}}
}

func (d *Detector) detectBinary(text string) []DetectionResult {
	tokens := strings.Fields(text)
	for _, tok := range tokens {
		if !binaryToken.MatchString(tok) {
			return nil
		}
	}
	confidence := 0.9
	// Lower confidence for short strings
	if len(tokens) < 4 {
		confidence = 0.6
	}
	return []DetectionResult{{
		Scheme:     SchemeBinary,
		Confidence: confidence,
		Reasoning:  "Whitespace separated groups of at least 8 bits",
	}}
}

func (d *Detector) detectHex(text string) []DetectionResult {
	trimmed := strings.TrimSpace(text)
	if !hexPattern.MatchString(trimmed) {
		return nil
	}
	confidence := 0.8
	// Lower confidence if it's all numbers (could be decimal)
	if digitsOnly.MatchString(trimmed) {
		confidence *= 0.6
	}
	return []DetectionResult{{
		Scheme:     SchemeHex,
		Confidence: confidence,
		Reasoning:  "Matches space separated hexadecimal pattern",
	}}
}

func (d *Detector) detectA1Z26(text string) []DetectionResult {
	trimmed := strings.TrimSpace(text)
	if !a1z26Pattern.MatchString(trimmed) {
		return nil
	}
	for _, tok := range a1z26Separators.Split(trimmed, -1) {
		if n, err := strconv.Atoi(tok); err != nil || n > 26 {
			return nil
		}
	}
	confidence := 0.7
	if strings.Contains(trimmed, ".") {
		confidence = 0.85
	}
	return []DetectionResult{{
		Scheme:     SchemeA1Z26,
		Confidence: confidence,
		Reasoning:  "Numbers between 0 and 26 separated by dots",
	}}
}

func (d *Detector) detectEmoji(text string) []DetectionResult {
	var mapped, total int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if strings.TrimSpace(cluster) == "" {
			continue
		}
		total++
		if _, ok := lookupEmoji(cluster); ok {
			mapped++
		}
	}
	if mapped == 0 {
		return nil
	}
	ratio := float64(mapped) / float64(total)
	return []DetectionResult{{
		Scheme:     SchemeEmoji,
		Confidence: 0.9 * ratio,
		Reasoning:  fmt.Sprintf("%d of %d characters are cipher emoji", mapped, total),
	}}
}

func (d *Detector) detectBase64(text string) []DetectionResult {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 4 || !base64Input.MatchString(trimmed) {
		return nil
	}
	decoded := DecodeBase64(trimmed)
	if decoded == InvalidBase64 || !isPrintable(decoded) {
		return nil
	}
	confidence := 0.9
	// valid padded Base64 is a multiple of 4
	if len(trimmed)%4 != 0 {
		confidence = 0.7
	}
	return []DetectionResult{{
		Scheme:     SchemeBase64,
		Confidence: confidence,
		Reasoning:  "Matches Base64 alphabet and decodes to readable text",
	}}
}

func (d *Detector) detectURL(text string) []DetectionResult {
	matches := percentEscape.FindAllString(text, -1)
	if len(matches) == 0 || DecodeURL(text) == InvalidURLEncoding {
		return nil
	}

	// Each match is 3 characters, so calculate encoded portion
	density := float64(len(matches)*3) / float64(len(text))
	confidence := 0.5 + math.Min(float64(len(matches))*0.1, 0.3) + math.Min(density, 0.2)
	return []DetectionResult{{
		Scheme:     SchemeURL,
		Confidence: math.Min(confidence, 0.95),
		Reasoning:  fmt.Sprintf("Contains %d URL-encoded sequences", len(matches)),
	}}
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
		if r == utf8.RuneError {
			return false
		}
	}
	return true
}

// DecodeResult pairs a detection with the text decoded under it.
type DecodeResult struct {
	Detection DetectionResult `json:"detection"`
	Decoded   string          `json:"decoded"`
}

// DecodeAll decodes text with every detected scheme, best guess first.
func DecodeAll(ctx context.Context, engine *Engine, text string) ([]DecodeResult, error) {
	detections, err := NewDetector().Detect(ctx, text)
	if err != nil {
		return nil, err
	}

	results := make([]DecodeResult, 0, len(detections))
	for _, detection := range detections {
		res, err := engine.Compute(Request{
			Scheme:    detection.Scheme,
			Direction: DirectionDecode,
			Text:      text,
		})
		if err != nil || !res.Valid {
			continue
		}
		results = append(results, DecodeResult{Detection: detection, Decoded: res.Output})
	}
	return results, nil
}
