package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	rh := RootHandler{}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Root,
	}))
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Opportunities
	oh := OpportunitiesHandler{List: d.ListOpportunities}
	mux.HandleFunc("/opportunities", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: oh.ListAll,
	}))

	// Scrape
	sch := ScrapeHandler{RunNow: d.RunNow, RunStatus: d.RunStatus}
	mux.HandleFunc("/scrape-now", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.RunSync,
	}))
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))

	// Secrets
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/gemini", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetGeminiKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
