package imagegen

import (
	"math"
	"net/url"
	"strings"
	"testing"
)

func TestParseParamsNormalizes(t *testing.T) {
	p, err := ParseParams(map[string]any{
		"prompt":        "  A cat  ",
		"aspect_ratio":  "16:9",
		"output_format": "PNG",
	})
	if err != nil {
		t.Fatalf("ParseParams error: %v", err)
	}
	if p.Prompt != "A cat" {
		t.Fatalf("prompt not trimmed: %q", p.Prompt)
	}
	if p.AspectRatio != "16:9" {
		t.Fatalf("unexpected aspect ratio: %q", p.AspectRatio)
	}
	if p.OutputFormat != "png" {
		t.Fatalf("format not lowercased: %q", p.OutputFormat)
	}
	if p.Strength != nil {
		t.Fatalf("strength should be unset, got %v", *p.Strength)
	}
}

func TestParseParamsDefaults(t *testing.T) {
	p, err := ParseParams(map[string]any{"prompt": "a dog"})
	if err != nil {
		t.Fatalf("ParseParams error: %v", err)
	}
	if p.AspectRatio != "1:1" {
		t.Fatalf("expected default aspect ratio, got %q", p.AspectRatio)
	}
	if p.OutputFormat != "webp" {
		t.Fatalf("expected default output format, got %q", p.OutputFormat)
	}
}

func TestParseParamsRejectsEmptyPrompt(t *testing.T) {
	for _, input := range []map[string]any{
		{},
		{"prompt": ""},
		{"prompt": "   "},
		{"prompt": 42},
		{"prompt": "", "output_format": "webp"},
	} {
		_, err := ParseParams(input)
		if err == nil {
			t.Fatalf("expected error for input %v", input)
		}
		if !strings.Contains(err.Error(), "Prompt is required") {
			t.Fatalf("unexpected message: %v", err)
		}
	}
}

func TestParseParamsRejectsBadAspectRatio(t *testing.T) {
	for _, ratio := range []any{"16x9", "wide", ":", "1:", ":1", "1.5:1", 16} {
		_, err := ParseParams(map[string]any{"prompt": "a cat", "aspect_ratio": ratio})
		if err == nil {
			t.Fatalf("expected error for ratio %v", ratio)
		}
	}
}

func TestParseParamsRejectsUnknownFormat(t *testing.T) {
	_, err := ParseParams(map[string]any{"prompt": "a cat", "output_format": "gif"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "webp, png, jpeg") {
		t.Fatalf("message should list allowed formats: %v", err)
	}
}

func TestParseParamsStrength(t *testing.T) {
	p, err := ParseParams(map[string]any{"prompt": "a cat", "strength": 0.0})
	if err != nil {
		t.Fatalf("ParseParams error: %v", err)
	}
	if p.Strength == nil || *p.Strength != 0 {
		t.Fatalf("explicit zero strength must stay set, got %v", p.Strength)
	}

	p, err = ParseParams(map[string]any{"prompt": "a cat", "strength": "0.75"})
	if err != nil {
		t.Fatalf("ParseParams error: %v", err)
	}
	if p.Strength == nil || *p.Strength != 0.75 {
		t.Fatalf("stringified strength not parsed: %v", p.Strength)
	}

	for _, bad := range []any{-0.1, 1.1, "high", true, "NaN", math.NaN(), "Inf", math.Inf(1)} {
		if _, err := ParseParams(map[string]any{"prompt": "a cat", "strength": bad}); err == nil {
			t.Fatalf("expected error for strength %v", bad)
		}
	}
}

func TestParamsFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("prompt", "a cat")
	form.Set("strength", "0.5")
	form.Set("output_format", "")
	form.Set("image_url", "https://example.com/in.png")

	input := ParamsFromForm(form)
	if input["prompt"] != "a cat" {
		t.Fatalf("prompt not carried over: %v", input)
	}
	if _, present := input["output_format"]; present {
		t.Fatalf("empty fields must be treated as absent: %v", input)
	}

	p, err := ParseParams(input)
	if err != nil {
		t.Fatalf("ParseParams error: %v", err)
	}
	if p.Strength == nil || *p.Strength != 0.5 {
		t.Fatalf("form strength not parsed: %v", p.Strength)
	}
	if p.OutputFormat != "webp" {
		t.Fatalf("expected default format, got %q", p.OutputFormat)
	}
}
