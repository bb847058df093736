package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/TravanaHQ/localizer"
)

// DeepL account tiers use different hosts; free-tier keys carry a ":fx"
// suffix.
const (
	deepLProBaseURL  = "https://api.deepl.com"
	deepLFreeBaseURL = "https://api-free.deepl.com"

	deepLDefaultTimeout = 15 * time.Second
)

// deepLTargets maps site locales to DeepL target language codes. Locales
// missing here (hi, th, vi, he, fa, ur, ...) fall back to pass-through.
var deepLTargets = map[string]string{
	"ar": "AR",
	"bg": "BG",
	"cs": "CS",
	"da": "DA",
	"de": "DE",
	"el": "EL",
	"en": "EN-GB",
	"es": "ES",
	"et": "ET",
	"fi": "FI",
	"fr": "FR",
	"hu": "HU",
	"id": "ID",
	"it": "IT",
	"ja": "JA",
	"ko": "KO",
	"lt": "LT",
	"lv": "LV",
	"nb": "NB",
	"nl": "NL",
	"pl": "PL",
	"pt": "PT-PT",
	"ro": "RO",
	"ru": "RU",
	"sk": "SK",
	"sl": "SL",
	"sv": "SV",
	"tr": "TR",
	"uk": "UK",
	"zh": "ZH",
}

// DeepLConfig holds configuration for the DeepL backend.
type DeepLConfig struct {
	APIKey     string        // DeepL API key (uses DEEPL_API_KEY env var if empty)
	BaseURL    string        // Override host selection (optional, for tests)
	Timeout    time.Duration // HTTP timeout (default: 15s)
	HTTPClient *http.Client  // Custom client (optional, for tests)
}

// DeepLBackend translates via the DeepL v2 REST API.
type DeepLBackend struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepLBackend creates a DeepL backend. An absent API key is not an
// error: the backend stays constructible and every translate call reports a
// configuration error, which the Adapter turns into pass-through.
func NewDeepLBackend(cfg DeepLConfig) *DeepLBackend {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("DEEPL_API_KEY")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if strings.HasSuffix(key, ":fx") {
			baseURL = deepLFreeBaseURL
		} else {
			baseURL = deepLProBaseURL
		}
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = deepLDefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &DeepLBackend{
		apiKey:  key,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Name implements Backend.
func (b *DeepLBackend) Name() string {
	return "deepl"
}

// Configured reports whether an API key is present.
func (b *DeepLBackend) Configured() bool {
	return b.apiKey != ""
}

// SupportsLocale implements Backend against the static target table.
func (b *DeepLBackend) SupportsLocale(locale string) bool {
	_, ok := deepLTargets[localizer.BaseLocale(locale)]
	return ok
}

type deepLTranslateRequest struct {
	Text               []string `json:"text"`
	TargetLang         string   `json:"target_lang"`
	SourceLang         string   `json:"source_lang,omitempty"`
	PreserveFormatting bool     `json:"preserve_formatting"`
	TagHandling        string   `json:"tag_handling,omitempty"`
}

type deepLTranslateResponse struct {
	Translations []struct {
		Text                   string `json:"text"`
		DetectedSourceLanguage string `json:"detected_source_language"`
	} `json:"translations"`
}

// Translate implements Backend.
func (b *DeepLBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	if !b.Configured() {
		return nil, &localizer.ConfigError{Message: "DEEPL_API_KEY not set"}
	}

	target, ok := deepLTargets[localizer.BaseLocale(req.TargetLang)]
	if !ok {
		return nil, &localizer.UnsupportedLocaleError{Locale: req.TargetLang}
	}

	body := deepLTranslateRequest{
		Text:               req.Texts,
		TargetLang:         target,
		SourceLang:         strings.ToUpper(localizer.BaseLocale(req.SourceLang)),
		PreserveFormatting: true,
	}
	if req.Markup {
		body.TagHandling = "html"
	}

	var resp deepLTranslateResponse
	if err := b.post(ctx, "/v2/translate", body, &resp); err != nil {
		return nil, err
	}

	out := make([]string, len(resp.Translations))
	for i, tr := range resp.Translations {
		out[i] = tr.Text
	}
	return out, nil
}

// Usage implements Backend via the DeepL usage endpoint.
func (b *DeepLBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	if !b.Configured() {
		return nil, &localizer.ConfigError{Message: "DEEPL_API_KEY not set"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/v2/usage", nil)
	if err != nil {
		return nil, &localizer.TransportError{Message: "building usage request", Cause: err}
	}
	b.setHeaders(httpReq)

	httpResp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, &localizer.TransportError{Message: "usage request failed", Cause: err, Retryable: true}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, statusError(httpResp)
	}

	var usage localizer.Usage
	if err := json.NewDecoder(httpResp.Body).Decode(&usage); err != nil {
		return nil, &localizer.TransportError{Message: "decoding usage response", Cause: err}
	}
	return &usage, nil
}

func (b *DeepLBackend) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &localizer.TransportError{Message: "encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &localizer.TransportError{Message: "building request", Cause: err}
	}
	b.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.client.Do(httpReq)
	if err != nil {
		return &localizer.TransportError{Message: "request failed", Cause: err, Retryable: true}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return statusError(httpResp)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return &localizer.TransportError{Message: "decoding response", Cause: err}
	}
	return nil
}

func (b *DeepLBackend) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "DeepL-Auth-Key "+b.apiKey)
	req.Header.Set("User-Agent", localizer.UserAgent())
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return &localizer.TransportError{
		Message:    fmt.Sprintf("deepl: %s", strings.TrimSpace(string(snippet))),
		StatusCode: resp.StatusCode,
		Retryable:  resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
	}
}
