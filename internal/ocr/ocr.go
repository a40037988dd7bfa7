package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spendsense/spendsense/constants"
)

type Config struct {
	ServiceURL string // remote OCR endpoint; if empty, local tesseract is used
	APIKey     string
	Timeout    time.Duration // remote request timeout, default 30s

	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	EnableTSVConfidence bool
	SkipPreprocess      bool // feed the original image untouched
}

type Result struct {
	Text       string
	Method     string // "remote-ocr" | "tesseract"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Engine recognizes text in a single prepared image file.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (Result, error)
}

// Extractor preprocesses a receipt image and hands it to the configured engine.
type Extractor struct {
	cfg    Config
	engine Engine
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	var engine Engine
	if cfg.ServiceURL != "" {
		engine = newSpaceClient(cfg, logger)
	} else {
		engine = &tesseractEngine{cfg: cfg, runner: execRunner{}, logger: logger}
	}
	return &Extractor{cfg: cfg, engine: engine, logger: logger}
}

// NewExtractorWithEngine wires a caller-supplied engine; used by tests.
func NewExtractorWithEngine(cfg Config, engine Engine, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	e.engine = engine
	return e
}

// Extract runs the full image path: preprocess, recognize, normalize, score.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	ext := constants.NormalizeExt(filepath.Ext(path))
	if constants.FileTypeForExt(ext) != "IMAGE" {
		e.logger.Error("ocr.unsupported_extension", "path", path, "ext", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}

	input := path
	var warns []string
	if !e.cfg.SkipPreprocess {
		prepped, cleanup, err := Preprocess(path)
		if err != nil {
			// OCR the original rather than failing the whole extraction
			warns = append(warns, "preprocess: "+err.Error())
			e.logger.Warn("ocr.preprocess.failed", "path", path, "error", err)
		} else {
			defer cleanup()
			input = prepped
		}
	}

	res, err := e.engine.Recognize(ctx, input)
	res.Warnings = append(warns, res.Warnings...)
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("ocr.extract.failed", "path", path, "method", res.Method,
			"elapsed_ms", res.Duration.Milliseconds(), "error", err)
		return res, err
	}

	res.Text = NormalizeText(res.Text)

	heur := heuristicConfidence(res.Text)
	if res.Confidence > 0 {
		res.Confidence = 0.7*res.Confidence + 0.3*heur
	} else {
		res.Confidence = heur
	}
	if res.Confidence > 1.0 {
		res.Confidence = 1.0
	}

	e.logger.Info("ocr.extract.ok",
		"path", path,
		"method", res.Method,
		"text_len", len(res.Text),
		"confidence", res.Confidence,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

var (
	reBoxNoise = regexp.MustCompile(`[|┃░▒▓]{2,}`)
	reBlankRun = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText strips scanner line noise and collapses blank runs so the
// field extractor sees one logical line per printed line.
func NormalizeText(txt string) string {
	txt = strings.ReplaceAll(txt, "\r\n", "\n")
	txt = reBoxNoise.ReplaceAllString(txt, "")
	txt = reBlankRun.ReplaceAllString(txt, "\n\n")
	return strings.TrimSpace(txt)
}
