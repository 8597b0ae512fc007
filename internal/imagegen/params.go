package imagegen

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"relay/internal/domain"
)

var aspectRatioPattern = regexp.MustCompile(`^\d+:\d+$`)

// allowed output formats, lowercase.
var allowedFormats = map[string]struct{}{
	"webp": {},
	"png":  {},
	"jpeg": {},
}

// ParseParams normalizes and validates a raw parameter mapping into a Params
// record. The input is never mutated; every failure is a validation-category
// error describing the offending field. Empty string values are treated the
// same as absent keys so the form-encoded variant behaves like the JSON one.
func ParseParams(input map[string]any) (*Params, error) {
	prompt, ok := input["prompt"].(string)
	prompt = strings.TrimSpace(prompt)
	if !ok || prompt == "" {
		return nil, domain.Validationf("Prompt is required and must be a non-empty string")
	}

	ratio, err := parseAspectRatio(input["aspect_ratio"])
	if err != nil {
		return nil, err
	}
	format, err := parseOutputFormat(input["output_format"])
	if err != nil {
		return nil, err
	}

	p := &Params{Prompt: prompt, AspectRatio: ratio, OutputFormat: format}

	if raw, present := input["strength"]; present {
		value, err := parseStrength(raw)
		if err != nil {
			return nil, err
		}
		p.Strength = &value
	}
	return p, nil
}

func parseAspectRatio(raw any) (string, error) {
	if raw == nil {
		return "1:1", nil
	}
	s, ok := raw.(string)
	s = strings.TrimSpace(s)
	if ok && s == "" {
		return "1:1", nil
	}
	if !ok || !aspectRatioPattern.MatchString(s) {
		return "", domain.Validationf(`aspect_ratio must match the width:height format, e.g. "16:9"`)
	}
	return s, nil
}

func parseOutputFormat(raw any) (string, error) {
	if raw == nil {
		return "webp", nil
	}
	s, ok := raw.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	if ok && s == "" {
		return "webp", nil
	}
	if _, allowed := allowedFormats[s]; !ok || !allowed {
		return "", domain.Validationf("output_format must be one of: webp, png, jpeg")
	}
	return s, nil
}

// parseStrength accepts a JSON number or a stringified number and enforces
// the inclusive [0,1] range.
func parseStrength(raw any) (float64, error) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, domain.Validationf("strength must be a number between 0 and 1")
		}
		value = parsed
	default:
		return 0, domain.Validationf("strength must be a number between 0 and 1")
	}
	// NaN compares false against both bounds, so it needs its own rejection.
	if math.IsNaN(value) || value < 0 || value > 1 {
		return 0, domain.Validationf("strength must be a number between 0 and 1")
	}
	return value, nil
}

// ParamsFromForm adapts URL-encoded or multipart form values to the mapping
// shape ParseParams expects, so both deployment variants share one validator.
func ParamsFromForm(form url.Values) map[string]any {
	input := make(map[string]any, len(form))
	for _, key := range []string{"prompt", "aspect_ratio", "output_format", "strength", "image_url"} {
		if v := strings.TrimSpace(form.Get(key)); v != "" {
			input[key] = v
		}
	}
	return input
}
