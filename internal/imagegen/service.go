package imagegen

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"relay/internal/domain"
	"relay/internal/infra"
)

// UpstreamClient submits a prepared multipart payload to the image API and
// returns the base64-encoded result.
type UpstreamClient interface {
	Generate(ctx context.Context, body []byte, contentType string) (string, error)
}

// ImageFetcher retrieves a remote source image into memory.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedImage, error)
}

// ServiceOptions configures the generation pipeline.
type ServiceOptions struct {
	Upstream UpstreamClient
	Fetcher  ImageFetcher
	Logger   *infra.Logger
	Now      func() time.Time
}

// Service runs one full pipeline traversal per call: validation happens at
// the boundary, then optional fetch, payload build, a single upstream call,
// and response translation. No state is shared across requests.
type Service struct {
	upstream UpstreamClient
	fetcher  ImageFetcher
	logger   *infra.Logger
	now      func() time.Time
}

// NewService wires the pipeline collaborators together.
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		upstream: opts.Upstream,
		fetcher:  opts.Fetcher,
		logger:   logger,
		now:      now,
	}
}

// Generate produces an image from a validated parameter record and translates
// the upstream result into a data URI plus metadata.
func (s *Service) Generate(ctx context.Context, p *Params) (*Result, error) {
	body, contentType, err := BuildForm(p, nil)
	if err != nil {
		return nil, err
	}
	encoded, err := s.upstream.Generate(ctx, body, contentType)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("output_format", p.OutputFormat).Msg("image generated")
	return &Result{
		ImageURL: dataURI(p.OutputFormat, encoded),
		Metadata: Metadata{
			Prompt:       p.Prompt,
			AspectRatio:  p.AspectRatio,
			OutputFormat: p.OutputFormat,
			GeneratedAt:  s.now().UTC(),
		},
	}, nil
}

// EnhanceFromURL fetches the source image referenced by rawURL, enforces the
// size cap, and runs the enhancement traversal.
func (s *Service) EnhanceFromURL(ctx context.Context, p *Params, rawURL string) (*Result, error) {
	if err := validateImageURL(rawURL); err != nil {
		return nil, err
	}
	img, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.Enhance(ctx, p, img)
}

// Enhance runs the enhancement traversal with an already-materialized source
// image, used directly by the raw-multipart deployment shape.
func (s *Service) Enhance(ctx context.Context, p *Params, img *FetchedImage) (*Result, error) {
	if len(img.Data) > MaxImageBytes {
		return nil, domain.Downloadf("Source image exceeds the 10MB size limit")
	}
	body, contentType, err := BuildForm(p, img)
	if err != nil {
		return nil, err
	}
	encoded, err := s.upstream.Generate(ctx, body, contentType)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("output_format", p.OutputFormat).
		Int("input_bytes", len(img.Data)).
		Msg("image enhanced")
	return &Result{
		ImageURL: dataURI(p.OutputFormat, encoded),
		Metadata: Metadata{
			Prompt:              p.Prompt,
			AspectRatio:         p.AspectRatio,
			OutputFormat:        p.OutputFormat,
			Strength:            p.Strength,
			InputImageURL:       img.SourceURL,
			InputImageType:      img.ContentType,
			InputImageSizeBytes: len(img.Data),
			EnhancedAt:          s.now().UTC(),
		},
	}, nil
}

// validateImageURL enforces the fetch precondition: an absolute URL with an
// http or https scheme. Anything else is a validation failure, not a download
// failure.
func validateImageURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return domain.Validationf("image_url is required and must be a valid http or https URL")
	}
	return nil
}

func dataURI(outputFormat, encoded string) string {
	return "data:" + MIMETypeFor(outputFormat) + ";base64," + encoded
}
