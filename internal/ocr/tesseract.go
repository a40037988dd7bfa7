package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// tesseractEngine shells out to a local tesseract binary. Used when no remote
// OCR service is configured.
type tesseractEngine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func (t *tesseractEngine) Recognize(ctx context.Context, imagePath string) (Result, error) {
	res := Result{Method: "tesseract", Language: t.cfg.TesseractLang}

	txt, warn, err := t.ocr(ctx, imagePath)
	res.Warnings = warn
	if err != nil {
		return res, err
	}
	res.Text = txt

	if t.cfg.EnableTSVConfidence {
		if c, w, err2 := t.tsvConfidence(ctx, imagePath); err2 == nil {
			res.Confidence = c
			res.Warnings = append(res.Warnings, w...)
		} else {
			res.Warnings = append(res.Warnings, err2.Error())
		}
	}
	return res, nil
}

func (t *tesseractEngine) ocr(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", t.cfg.TesseractLang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(t.cfg.OEM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}

// tsvConfidence runs tesseract in TSV mode and returns mean word conf in 0..1.
func (t *tesseractEngine) tsvConfidence(ctx context.Context, path string) (float32, []string, error) {
	args := []string{path, "stdout", "-l", t.cfg.TesseractLang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(t.cfg.OEM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		return 0, []string{string(errb)}, fmt.Errorf("tesseract TSV: %w", err)
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) == 0 {
		return 0, nil, nil
	}
	// resolve the conf column from the header; -1 marks non-word rows
	confIdx := -1
	for i, col := range strings.Split(lines[0], "\t") {
		if strings.TrimSpace(col) == "conf" {
			confIdx = i
			break
		}
	}
	if confIdx < 0 {
		return 0, nil, nil
	}
	var sum, n float64
	for _, ln := range lines[1:] {
		if len(ln) == 0 {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) <= confIdx {
			continue
		}
		confStr := cols[confIdx]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil, nil
	}
	mean := sum / n // 0..100
	return float32(mean / 100.0), nil, nil
}
