// Package vies validates Belgian VAT numbers against the EU VIES registry,
// falling back to a local format check whenever the registry cannot answer.
package vies

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrServiceUnavailable = errors.New("VAT registry unavailable")

var (
	nonDigits     = regexp.MustCompile(`[^0-9]`)
	formatPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Source tells which branch produced a verdict.
type Source string

const (
	SourceRegistry Source = "registry"
	SourceFormat   Source = "format"
)

type Details struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

type Verdict struct {
	Number  string   `json:"vat_number"`
	Source  Source   `json:"source"`
	IsValid bool     `json:"is_valid"`
	Details *Details `json:"details,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RegistryAnswer is the decoded registry response.
type RegistryAnswer struct {
	Valid       bool
	RequestDate string
	Name        string
	Address     string
}

// Registry looks up a cleaned VAT number.
type Registry interface {
	Lookup(ctx context.Context, cleaned string) (RegistryAnswer, error)
}

// Clean strips every non-digit character.
func Clean(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// CheckFormat reports whether cleaned is exactly ten digits.
func CheckFormat(cleaned string) bool {
	return formatPattern.MatchString(cleaned)
}

type Client struct {
	url         string
	countryCode string
	http        *http.Client
}

func NewClient(url, countryCode string, timeout time.Duration) *Client {
	return &Client{
		url:         url,
		countryCode: strings.ToUpper(countryCode),
		http:        &http.Client{Timeout: timeout},
	}
}

type lookupRequest struct {
	VATNumber   string `json:"vatNumber"`
	CountryCode string `json:"countryCode"`
}

type lookupResponse struct {
	Valid       *bool  `json:"valid"`
	RequestDate string `json:"requestDate"`
	UserError   string `json:"userError,omitempty"`
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Lookup performs a single registry call. Every failure wraps ErrServiceUnavailable.
func (c *Client) Lookup(ctx context.Context, cleaned string) (RegistryAnswer, error) {
	body, err := json.Marshal(lookupRequest{
		VATNumber:   c.countryCode + cleaned,
		CountryCode: c.countryCode,
	})
	if err != nil {
		return RegistryAnswer{}, fmt.Errorf("%w: encode request: %v", ErrServiceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return RegistryAnswer{}, fmt.Errorf("%w: build request: %v", ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return RegistryAnswer{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return RegistryAnswer{}, fmt.Errorf("%w: registry responded %s", ErrServiceUnavailable, resp.Status)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return RegistryAnswer{}, fmt.Errorf("%w: decode response: %v", ErrServiceUnavailable, err)
	}
	if decoded.Valid == nil {
		return RegistryAnswer{}, fmt.Errorf("%w: response missing validity flag", ErrServiceUnavailable)
	}

	return RegistryAnswer{
		Valid:       *decoded.Valid,
		RequestDate: decoded.RequestDate,
		Name:        strings.TrimSpace(decoded.Name),
		Address:     strings.TrimSpace(decoded.Address),
	}, nil
}

type Validator struct {
	registry Registry
	log      zerolog.Logger
}

func NewValidator(registry Registry, log zerolog.Logger) *Validator {
	return &Validator{registry: registry, log: log}
}

// Validate never fails: a registry error downgrades to the format check.
func (v *Validator) Validate(ctx context.Context, raw string) Verdict {
	cleaned := Clean(raw)

	answer, err := v.registry.Lookup(ctx, cleaned)
	if err != nil {
		v.log.Warn().Err(err).Str("vat_number", cleaned).Msg("registry lookup failed, using format check")
		return FormatVerdict(cleaned, err)
	}
	return RegistryVerdict(cleaned, answer)
}

func RegistryVerdict(cleaned string, answer RegistryAnswer) Verdict {
	verdict := Verdict{Number: cleaned, Source: SourceRegistry, IsValid: answer.Valid}
	if answer.Name != "" || answer.Address != "" {
		verdict.Details = &Details{Name: answer.Name, Address: answer.Address}
	}
	return verdict
}

func FormatVerdict(cleaned string, cause error) Verdict {
	verdict := Verdict{Number: cleaned, Source: SourceFormat, IsValid: CheckFormat(cleaned)}
	if cause != nil {
		verdict.Error = cause.Error()
	}
	return verdict
}
