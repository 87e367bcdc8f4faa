package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"alquimia/internal/credits"
	"alquimia/internal/events"
	"alquimia/internal/generation"
	"alquimia/internal/llm"
	"alquimia/internal/media"
	"alquimia/internal/persona"
	"alquimia/internal/prompt"
	"alquimia/internal/render"
	"alquimia/internal/storage"
)

const (
	maxImageBytes = 5 * 1024 * 1024 // 5 MB
)

// Handler bundles dependencies for the API endpoints.
type Handler struct {
	Service  *generation.Service
	Store    storage.Store
	Credits  *credits.Gate
	Uploader media.Uploader
	Renderer render.Renderer
	Events   *events.Broker
}

// imagePayload is an inbound reference image: base64 data or a full data
// URL, plus an optional declared media type.
type imagePayload struct {
	Data string `json:"data"`
	MIME string `json:"mime,omitempty"`
	Role string `json:"role,omitempty"`
}

func (p imagePayload) ref() (generation.ImageRef, error) {
	data := strings.TrimSpace(p.Data)
	mime := strings.TrimSpace(p.MIME)
	if strings.HasPrefix(data, "data:") {
		header, payload, ok := strings.Cut(data, ",")
		if !ok {
			return generation.ImageRef{}, errors.New("invalid data URL")
		}
		data = payload
		if mime == "" {
			mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
	}
	if data == "" {
		return generation.ImageRef{}, errors.New("image data is required")
	}
	if mime == "" {
		mime = "image/png"
	}
	return generation.ImageRef{Data: data, MIME: mime}, nil
}

// userID resolves the caller identity. The frontend sends it explicitly;
// everything else shares the anonymous bucket.
func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-User-ID")); id != "" {
		return id
	}
	return "anonymous"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 32<<20)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps failures from the orchestration layer to HTTP.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, llm.ErrAPIKeyMissing) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "AI provider API key is not configured"})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// charge deducts the action cost up front. Reports false after writing
// the error response when the balance cannot cover it.
func (h Handler) charge(w http.ResponseWriter, r *http.Request, action credits.Action) bool {
	if h.Credits == nil {
		return true
	}
	balance, err := h.Credits.Charge(r.Context(), userID(r), action)
	if errors.Is(err, storage.ErrInsufficientCredits) {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":   "insufficient credits",
			"balance": balance,
		})
		return false
	}
	if err != nil {
		log.Printf("credit charge failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not charge credits"})
		return false
	}
	return true
}

func (h Handler) refund(r *http.Request, action credits.Action) {
	if h.Credits == nil {
		return
	}
	if _, err := h.Credits.Refund(r.Context(), userID(r), action); err != nil {
		log.Printf("credit refund failed: %v", err)
	}
}

// recordHistory persists the exchange and notifies SSE subscribers.
func (h Handler) recordHistory(r *http.Request, mode persona.Mode, input, output any, previewURL string) {
	if h.Store == nil {
		return
	}
	inputJSON, _ := json.Marshal(input)
	outputJSON, _ := json.Marshal(output)
	item, err := h.Store.SaveHistory(r.Context(), storage.HistoryItem{
		UserID:     userID(r),
		Mode:       mode,
		Input:      inputJSON,
		Output:     outputJSON,
		PreviewURL: previewURL,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("save history failed: %v", err)
		return
	}
	if h.Events != nil {
		h.Events.Publish(events.Event{
			HistoryID: item.ID,
			UserID:    item.UserID,
			Mode:      mode,
			Status:    events.StatusCompleted,
		})
	}
}

// generateRequest describes inbound payload for prompt generation.
type generateRequest struct {
	Mode          string         `json:"mode"`
	Concept       string         `json:"concept"`
	Style         string         `json:"style,omitempty"`
	Tone          string         `json:"tone,omitempty"`
	Ratio         string         `json:"ratio,omitempty"`
	CameraFraming string         `json:"camera_framing,omitempty"`
	Details       []string       `json:"details,omitempty"`
	AnalyzedStyle string         `json:"analyzed_style,omitempty"`
	Model         string         `json:"model,omitempty"`
	Video         *videoPayload  `json:"video,omitempty"`
	LogoMaterial  string         `json:"logo_material,omitempty"`
	Aesthetic     string         `json:"mockup_aesthetic,omitempty"`
	Attachments   []imagePayload `json:"attachments,omitempty"`
}

type videoPayload struct {
	FPS    string `json:"fps,omitempty"`
	Pacing string `json:"pacing,omitempty"`
}

func (req generateRequest) toPromptRequest() (prompt.Request, error) {
	out := prompt.Request{
		Mode:            persona.Mode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		Concept:         strings.TrimSpace(req.Concept),
		Style:           strings.TrimSpace(req.Style),
		Tone:            strings.TrimSpace(req.Tone),
		Ratio:           strings.TrimSpace(req.Ratio),
		CameraFraming:   strings.TrimSpace(req.CameraFraming),
		Details:         req.Details,
		AnalyzedStyle:   strings.TrimSpace(req.AnalyzedStyle),
		LogoMaterial:    persona.Material(req.LogoMaterial),
		MockupAesthetic: persona.Aesthetic(req.Aesthetic),
	}
	if out.Mode == "" {
		return prompt.Request{}, errors.New("mode is required")
	}
	if req.Video != nil {
		out.Video = &prompt.VideoSettings{FPS: req.Video.FPS, Pacing: req.Video.Pacing}
	}
	for _, att := range req.Attachments {
		ref, err := att.ref()
		if err != nil {
			return prompt.Request{}, err
		}
		out.Attachments = append(out.Attachments, prompt.Attachment{
			Data: ref.Data,
			MIME: ref.MIME,
			Role: prompt.Role(strings.ToLower(strings.TrimSpace(att.Role))),
		})
	}
	if out.Concept == "" && len(out.Attachments) == 0 {
		return prompt.Request{}, errors.New("concept or a reference image is required")
	}
	return out, nil
}

// Generate handles POST /api/generate.
func (h Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	promptReq, err := req.toPromptRequest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionGenerate) {
		return
	}

	ctx := r.Context()
	if req.Model != "" {
		ctx = llm.WithModel(ctx, req.Model)
	}

	variants, err := h.Service.CreativePrompts(ctx, promptReq)
	if err != nil {
		h.refund(r, credits.ActionGenerate)
		writeServiceError(w, err)
		return
	}

	h.recordHistory(r, promptReq.Mode, req, variants, "")
	writeJSON(w, http.StatusOK, map[string]any{"prompts": variants})
}

// DescribeStyle handles POST /api/style/describe.
func (h Handler) DescribeStyle(w http.ResponseWriter, r *http.Request) {
	image, err := h.readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	description, err := h.Service.StyleDescription(r.Context(), image)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": description})
}

// Enhance handles POST /api/enhance.
func (h Handler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	enhanced, err := h.Service.EnhanceRealism(r.Context(), req.Prompt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": enhanced})
}

// ReverseImage handles POST /api/reverse.
func (h Handler) ReverseImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionReverse) {
		return
	}

	breakdown, err := h.Service.ReverseEngineerImage(r.Context(), image)
	if err != nil {
		h.refund(r, credits.ActionReverse)
		writeServiceError(w, err)
		return
	}
	if breakdown == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}

	h.recordHistory(r, "REVERSE", map[string]string{"mime": image.MIME}, breakdown, "")
	writeJSON(w, http.StatusOK, breakdown)
}

// ReverseText handles POST /api/reverse/text.
func (h Handler) ReverseText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionReverse) {
		return
	}

	breakdown, err := h.Service.ReverseEngineerText(r.Context(), req.Prompt)
	if err != nil {
		h.refund(r, credits.ActionReverse)
		writeServiceError(w, err)
		return
	}
	if breakdown == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// Adapt handles POST /api/adapt.
func (h Handler) Adapt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference imagePayload   `json:"reference"`
		Products  []imagePayload `json:"products"`
		ColorRef  *imagePayload  `json:"color_ref,omitempty"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	adapt := generation.AdaptRequest{}
	ref, err := req.Reference.ref()
	if err != nil {
		http.Error(w, "reference: "+err.Error(), http.StatusBadRequest)
		return
	}
	adapt.Reference = ref
	if len(req.Products) == 0 {
		http.Error(w, "at least one product image is required", http.StatusBadRequest)
		return
	}
	for i, p := range req.Products {
		product, err := p.ref()
		if err != nil {
			http.Error(w, fmt.Sprintf("product %d: %v", i+1, err), http.StatusBadRequest)
			return
		}
		adapt.Products = append(adapt.Products, product)
	}
	if req.ColorRef != nil {
		color, err := req.ColorRef.ref()
		if err != nil {
			http.Error(w, "color_ref: "+err.Error(), http.StatusBadRequest)
			return
		}
		adapt.ColorRef = &color
	}

	if !h.charge(w, r, credits.ActionAdapt) {
		return
	}

	result, err := h.Service.AdaptStyle(r.Context(), adapt)
	if err != nil {
		h.refund(r, credits.ActionAdapt)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": result})
}

// Palette handles POST /api/palette.
func (h Handler) Palette(w http.ResponseWriter, r *http.Request) {
	image, err := h.readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionPalette) {
		return
	}

	palette, err := h.Service.ExtractPalette(r.Context(), image)
	if err != nil {
		h.refund(r, credits.ActionPalette)
		writeServiceError(w, err)
		return
	}
	if palette == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, palette)
}

// Agent handles POST /api/agent.
func (h Handler) Agent(w http.ResponseWriter, r *http.Request) {
	var params generation.AgentParams
	if err := readJSON(r, &params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(params.Role) == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionAgent) {
		return
	}

	result, err := h.Service.AgentSystemPrompt(r.Context(), params)
	if err != nil {
		h.refund(r, credits.ActionAgent)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"system_prompt": result})
}

// Campaign handles POST /api/campaign.
func (h Handler) Campaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Concept   string        `json:"concept"`
		Style     string        `json:"style,omitempty"`
		Category  string        `json:"category"`
		Reference *imagePayload `json:"reference,omitempty"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Concept) == "" {
		http.Error(w, "concept is required", http.StatusBadRequest)
		return
	}

	category := persona.Category(strings.ToUpper(strings.TrimSpace(req.Category)))
	switch category {
	case persona.CategoryFilm, persona.CategoryCommercial, persona.CategoryEducation:
	case "":
		category = persona.CategoryCommercial
	default:
		http.Error(w, "unknown campaign category", http.StatusBadRequest)
		return
	}

	var ref *generation.ImageRef
	if req.Reference != nil {
		image, err := req.Reference.ref()
		if err != nil {
			http.Error(w, "reference: "+err.Error(), http.StatusBadRequest)
			return
		}
		ref = &image
	}

	if !h.charge(w, r, credits.ActionCampaign) {
		return
	}

	campaign, err := h.Service.AdCampaign(r.Context(), req.Concept, req.Style, category, ref)
	if err != nil {
		h.refund(r, credits.ActionCampaign)
		writeServiceError(w, err)
		return
	}
	if campaign == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}

	h.recordHistory(r, "VIDEO", req, campaign, "")
	writeJSON(w, http.StatusOK, campaign)
}

// Render handles POST /api/render.
func (h Handler) Render(w http.ResponseWriter, r *http.Request) {
	if h.Renderer == nil {
		http.Error(w, "rendering not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Prompt    string        `json:"prompt"`
		Reference *imagePayload `json:"reference,omitempty"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	if !h.charge(w, r, credits.ActionRender) {
		return
	}

	payload := render.Payload{Prompt: req.Prompt}
	if req.Reference != nil {
		image, err := req.Reference.ref()
		if err != nil {
			http.Error(w, "reference: "+err.Error(), http.StatusBadRequest)
			return
		}
		payload.Reference = image.Data
	}

	result, err := h.Renderer.Render(r.Context(), payload)
	if err != nil {
		h.refund(r, credits.ActionRender)
		log.Printf("render failed: %v", err)
		http.Error(w, "render failed", http.StatusBadGateway)
		return
	}

	// Inline results get persisted so history carries a stable URL.
	if result.URL == "" && result.Data != "" && h.Uploader != nil {
		if url, err := media.SavePreview(r.Context(), h.Uploader, result.MIME, result.Data); err == nil {
			result.URL = url
		} else if !errors.Is(err, media.ErrUploaderDisabled) {
			log.Printf("store preview failed: %v", err)
		}
	}

	h.recordHistory(r, "IMAGE", map[string]string{"prompt": req.Prompt}, map[string]string{"url": result.URL}, result.URL)
	writeJSON(w, http.StatusOK, result)
}

// ListHistory handles GET /api/history.
func (h Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListHistory(r.Context(), userID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetHistory handles GET /api/history/{id}.
func (h Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.GetHistory(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteHistory handles DELETE /api/history/{id}.
func (h Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteHistory(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreditBalance handles GET /api/credits.
func (h Handler) CreditBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Credits.Balance(r.Context(), userID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}

// StreamEvents handles GET /api/events as an SSE stream.
func (h Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ch := h.Events.Subscribe()
	defer h.Events.Unsubscribe(ch)

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case evt := <-ch:
			payload, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// readImage accepts either a JSON image payload or a multipart form with
// an "image" file field.
func (h Handler) readImage(r *http.Request) (generation.ImageRef, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return readMultipartImage(r)
	}
	var payload imagePayload
	if err := readJSON(r, &payload); err != nil {
		return generation.ImageRef{}, err
	}
	return payload.ref()
}

func readMultipartImage(r *http.Request) (generation.ImageRef, error) {
	const maxFormMemory = maxImageBytes + (1 << 20)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return generation.ImageRef{}, fmt.Errorf("invalid multipart payload: %w", err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return generation.ImageRef{}, fmt.Errorf("could not read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return generation.ImageRef{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return generation.ImageRef{}, fmt.Errorf("image too large (max %d MB)", maxImageBytes/(1024*1024))
	}
	if len(data) == 0 {
		return generation.ImageRef{}, errors.New("image is empty")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return generation.ImageRef{
		Data: base64.StdEncoding.EncodeToString(data),
		MIME: contentType,
	}, nil
}
