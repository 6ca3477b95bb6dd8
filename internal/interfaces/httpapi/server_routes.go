package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons", handler.ListSeasonsByLeague)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListSeasonMatches)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.ListSeasonStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.SubmitJoinRequest)))
	mux.Handle("GET /v1/join-requests/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyJoinRequests)))
	mux.Handle("POST /v1/join-requests/{requestID}/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveJoinRequest)))
	mux.Handle("POST /v1/join-requests/{requestID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectJoinRequest)))
	mux.Handle("POST /v1/join-requests/{requestID}/withdraw", RequireAuth(verifier, http.HandlerFunc(handler.WithdrawJoinRequest)))
	mux.Handle("GET /v1/leagues/{leagueID}/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.ListPendingJoinRequests)))

	mux.Handle("POST /v1/seasons/{seasonID}/status", RequireAuth(verifier, http.HandlerFunc(handler.TransitionSeasonStatus)))
	mux.Handle("POST /v1/seasons/{seasonID}/fixtures", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSeasonFixtures)))
	mux.Handle("DELETE /v1/seasons/{seasonID}/fixtures", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSeasonFixtures)))

	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatchResult)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/expire-join-requests", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunExpireJoinRequestsJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeStandingsJob)))
}
