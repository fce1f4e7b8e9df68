package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"oppintel-engine/internal/config"
	"oppintel-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setGeminiKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	var req setGeminiKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	account := cfg.Structuring.KeyringAccount
	if account == "" {
		account = "gemini"
	}
	if err := secrets.SetGeminiAPIKey(account, req.Key); err != nil {
		http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
