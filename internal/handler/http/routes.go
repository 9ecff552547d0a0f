package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes behind a session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/vault/setup", h.vaultSetup)
		r.Post("/api/vault/unlock", h.vaultUnlock)
		r.Post("/api/vault/lock", h.vaultLock)
		r.Get("/api/vault/status", h.vaultStatus)

		r.Post("/api/vault/fields/encrypt", h.vaultEncryptFields)
		r.Post("/api/vault/fields/decrypt", h.vaultDecryptFields)

		r.Put("/api/vault/delegate", h.delegateAssign)
		r.Delete("/api/vault/delegate", h.delegateRemove)
		r.Put("/api/vault/admin-access", h.adminAccess)

		r.Post("/api/recovery/request", h.recoverySubmit)
		r.Post("/api/recovery/approve", h.recoveryApprove)
		r.Post("/api/recovery/reject", h.recoveryReject)
		r.Post("/api/recovery/unlock", h.recoveryUnlock)

		r.Post("/api/grants/invite", h.grantInvite)
		r.Post("/api/grants/accept", h.grantAccept)
		r.Post("/api/grants/revoke", h.grantRevoke)
		r.Get("/api/grants", h.grantList)
		r.Get("/api/grants/access", h.access)

		r.Post("/api/2fa/challenge", h.secondFactorChallenge)
		r.Post("/api/2fa/verify", h.secondFactorVerify)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
