package handler

import (
	"net/http"

	"github.com/gemchat-dev/gemchat/shared/api"
	"github.com/gemchat-dev/gemchat/shared/utils"
)

// GetConfig hands the chat UI its generative-language API key.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.ConfigResponse{GoogleAPIKey: h.cfg.Private.GoogleAPIKey})
}
