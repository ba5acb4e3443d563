package service

import (
	"github.com/dkotenko/challenger/internal/config"
	"github.com/dkotenko/challenger/internal/pg"
	"github.com/dkotenko/challenger/internal/repo"
	"github.com/dkotenko/challenger/internal/service/authservice"
	"github.com/dkotenko/challenger/internal/service/challengeservice"
	"github.com/dkotenko/challenger/internal/service/ledgerservice"
	"github.com/dkotenko/challenger/internal/service/settlementservice"

	pkgauth "github.com/dkotenko/challenger/pkg/auth"
)

type Services struct {
	AuthService       *authservice.Service
	LedgerService     *ledgerservice.Service
	SettlementService *settlementservice.Service
	ChallengeService  *challengeservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config, notifier challengeservice.Notifier) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, cfg.SignupReward)
	settlementService := settlementservice.New(repo.BetRepo, repo.LedgerRepo, cfg.CreatorBonusRate)
	challengeService := challengeservice.New(
		repo.ChallengeRepo, repo.BetRepo, repo.VoteRepo,
		ledgerService, settlementService, notifier,
		txManager, cfg,
	)
	authService := authservice.New(repo.UserRepo, ledgerService, &pkgauth.HashService{}, pkgauth.NewJWTService(cfg.JWTSecret))

	return &Services{
		AuthService:       authService,
		LedgerService:     ledgerService,
		SettlementService: settlementService,
		ChallengeService:  challengeService,
	}
}
