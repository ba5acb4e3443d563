package handlers

import (
	"net/http"

	_ "github.com/dkotenko/challenger/docs"
	authhandlers "github.com/dkotenko/challenger/internal/handlers/auth"
	challengehandlers "github.com/dkotenko/challenger/internal/handlers/challenges"
	ledgerhandlers "github.com/dkotenko/challenger/internal/handlers/ledger"
	"github.com/dkotenko/challenger/internal/service"
	"github.com/dkotenko/challenger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type ChallengeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	PlaceBet(w http.ResponseWriter, r *http.Request)
	SubmitProof(w http.ResponseWriter, r *http.Request)
	CastVote(w http.ResponseWriter, r *http.Request)
	GetUserBets(w http.ResponseWriter, r *http.Request)
}

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler      AuthHandler
	ChallengeHandler ChallengeHandler
	LedgerHandler    LedgerHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:      authhandlers.New(s.AuthService),
		ChallengeHandler: challengehandlers.New(s.ChallengeService),
		LedgerHandler:    ledgerhandlers.New(s.LedgerService),
		jwtService:       jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Route("/challenges", func(r chi.Router) {
				r.Post("/", h.ChallengeHandler.Create)
				r.Get("/", h.ChallengeHandler.List)
				r.Get("/{id}", h.ChallengeHandler.Get)
				r.Post("/{id}/bets", h.ChallengeHandler.PlaceBet)
				r.Post("/{id}/proof", h.ChallengeHandler.SubmitProof)
				r.Post("/{id}/votes", h.ChallengeHandler.CastVote)
			})
			r.Route("/user", func(r chi.Router) {
				r.Get("/balance", h.LedgerHandler.GetBalance)
				r.Get("/ledger", h.LedgerHandler.GetHistory)
				r.Get("/bets", h.ChallengeHandler.GetUserBets)
			})
		})
	})

	return r
}
