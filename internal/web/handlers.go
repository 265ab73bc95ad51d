package web

import (
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hpungsan/tweetsmith/internal/ops"
	"github.com/hpungsan/tweetsmith/internal/settings"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// Handlers contains HTTP route handlers for the API.
type Handlers struct {
	db     *sql.DB
	gen    ops.Generator
	store  settings.Store
	logger logrus.FieldLogger
}

type transformRequest struct {
	Draft   string         `json:"draft"`
	Filters *tweet.Filters `json:"filters"`
	Context string         `json:"context"`
}

type createTweetRequest struct {
	Original    string  `json:"original"`
	Transformed string  `json:"transformed"`
	Context     *string `json:"context"`
	ImageURL    *string `json:"imageUrl"`
	ImageAlt    *string `json:"imageAlt"`
}

type settingsRequest struct {
	Context *string `json:"context"`
	Filters *struct {
		MaxChars  *int    `json:"maxChars"`
		EmojiMode *string `json:"emojiMode"`
	} `json:"filters"`
}

// HandleTransform handles POST /transform — rewrite a draft.
func (h *Handlers) HandleTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	out, err := ops.Transform(r.Context(), h.gen, ops.TransformInput{
		Draft:   req.Draft,
		Filters: req.Filters,
		Context: req.Context,
	})
	if err != nil {
		h.logger.WithError(err).Warn("transform failed")
		renderError(w, err)
		return
	}

	h.logger.WithField("chars", tweet.CountChars(out.Transformed)).Debug("draft transformed")
	renderJSON(w, http.StatusOK, out)
}

// HandleListTweets handles GET /tweets — all saved tweets, newest first.
func (h *Handlers) HandleListTweets(w http.ResponseWriter, r *http.Request) {
	items, err := ops.List(r.Context(), h.db)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, items)
}

// HandleCreateTweet handles POST /tweets — save a finished rewrite.
func (h *Handlers) HandleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var req createTweetRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	saved, err := ops.Create(r.Context(), h.db, ops.CreateInput{
		Original:    req.Original,
		Transformed: req.Transformed,
		Context:     req.Context,
		ImageURL:    req.ImageURL,
		ImageAlt:    req.ImageAlt,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusCreated, saved)
}

// HandleDeleteTweet handles DELETE /tweets?id= — remove a saved tweet.
func (h *Handlers) HandleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: r.URL.Query().Get("id")})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleGetSettings handles GET /settings.
func (h *Handlers) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	prefs, err := ops.GetPreferences(r.Context(), h.store)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, prefs)
}

// HandlePutSettings handles PUT /settings — partial update of preferences.
func (h *Handlers) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	input := ops.PreferencesInput{Context: req.Context}
	if req.Filters != nil {
		input.MaxChars = req.Filters.MaxChars
		input.EmojiMode = req.Filters.EmojiMode
	}

	prefs, err := ops.SetPreferences(r.Context(), h.store, input)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, prefs)
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
