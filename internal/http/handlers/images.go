package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"relay/internal/imagegen"
)

const (
	generateLabel = "Image generation failed"
	enhanceLabel  = "Image enhancement failed"
)

// ImagesGenerate handles POST /v1/images/generate: validate, one upstream
// call, translate.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.error(w, http.StatusBadRequest, generateLabel, "Invalid JSON payload")
		return
	}
	params, err := imagegen.ParseParams(input)
	if err != nil {
		a.fail(w, generateLabel, err)
		return
	}
	result, err := a.Service.Generate(r.Context(), params)
	if err != nil {
		a.fail(w, generateLabel, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

// ImagesEnhance handles POST /v1/images/enhance. The endpoint accepts either
// a JSON body referencing the source image by URL or a raw multipart form
// carrying the image file directly; both shapes funnel into the same
// validator and pipeline.
func (a *App) ImagesEnhance(w http.ResponseWriter, r *http.Request) {
	input, upload, ok := a.decodeEnhanceRequest(w, r)
	if !ok {
		return
	}
	params, err := imagegen.ParseParams(input)
	if err != nil {
		a.fail(w, enhanceLabel, err)
		return
	}

	var result *imagegen.Result
	if upload != nil {
		result, err = a.Service.Enhance(r.Context(), params, upload)
	} else {
		imageURL, _ := input["image_url"].(string)
		result, err = a.Service.EnhanceFromURL(r.Context(), params, imageURL)
	}
	if err != nil {
		a.fail(w, enhanceLabel, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

// decodeEnhanceRequest normalizes both enhance body shapes into the raw
// parameter mapping plus an optional uploaded source image. On failure it
// writes the error response and reports ok=false.
func (a *App) decodeEnhanceRequest(w http.ResponseWriter, r *http.Request) (map[string]any, *imagegen.FetchedImage, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			a.error(w, http.StatusBadRequest, enhanceLabel, "Invalid JSON payload")
			return nil, nil, false
		}
		return input, nil, true
	}

	// Cut oversized uploads off at the transport instead of spooling them;
	// the extra MiB leaves room for the non-file fields and part framing.
	r.Body = http.MaxBytesReader(w, r.Body, imagegen.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(imagegen.MaxImageBytes + 1<<20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			a.error(w, http.StatusBadRequest, enhanceLabel, "Source image exceeds the 10MB size limit")
		} else {
			a.error(w, http.StatusBadRequest, enhanceLabel, "Invalid multipart payload")
		}
		return nil, nil, false
	}
	input := imagegen.ParamsFromForm(r.PostForm)

	file, header, err := r.FormFile("image")
	if err != nil {
		// No file part: the form must reference the image by URL instead.
		return input, nil, true
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, enhanceLabel, "Failed to read uploaded image")
		return nil, nil, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return input, &imagegen.FetchedImage{Data: data, ContentType: contentType}, true
}
