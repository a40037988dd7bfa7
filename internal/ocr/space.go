package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/spendsense/spendsense/internal/common"
)

// spaceClient talks to an OCR.space-compatible HTTP service. The file is
// uploaded as multipart form data; the answer carries parsed text per region.
type spaceClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func newSpaceClient(cfg Config, logger *slog.Logger) *spaceClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &spaceClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type spaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	ErrorMessage          any  `json:"ErrorMessage"`
}

func (c *spaceClient) Recognize(ctx context.Context, imagePath string) (Result, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()
	res := Result{Method: "remote-ocr", Language: c.cfg.TesseractLang}

	body, contentType, err := c.buildForm(imagePath)
	if err != nil {
		return res, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceURL, body)
	if err != nil {
		return res, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	c.logger.Info("ocr.remote.request", "req_id", reqID, "url", c.cfg.ServiceURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ocr.remote.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return res, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Info("ocr.remote.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if resp.StatusCode/100 != 2 {
		return res, fmt.Errorf("ocr service: non-2xx status: %d", resp.StatusCode)
	}

	var parsed spaceResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return res, fmt.Errorf("decode ocr response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return res, fmt.Errorf("ocr service error: %v", parsed.ErrorMessage)
	}

	var b bytes.Buffer
	for _, pr := range parsed.ParsedResults {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pr.ParsedText)
	}
	res.Text = b.String()
	return res, nil
}

func (c *spaceClient) buildForm(imagePath string) (*bytes.Buffer, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy image: %w", err)
	}

	lang := c.cfg.TesseractLang
	if lang == "" {
		lang = "eng"
	}
	_ = w.WriteField("language", lang)
	_ = w.WriteField("scale", "true")
	_ = w.WriteField("OCREngine", "2")

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
