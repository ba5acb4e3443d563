package repo

import (
	"github.com/dkotenko/challenger/internal/pg"
	betrepo "github.com/dkotenko/challenger/internal/repo/bet-repo"
	challengerepo "github.com/dkotenko/challenger/internal/repo/challenge-repo"
	ledgerrepo "github.com/dkotenko/challenger/internal/repo/ledger-repo"
	userrepo "github.com/dkotenko/challenger/internal/repo/user-repo"
	voterepo "github.com/dkotenko/challenger/internal/repo/vote-repo"
)

// Repositories keeps the concrete repos: the bet and ledger repos back more
// than one service interface each.
type Repositories struct {
	UserRepo      *userrepo.Repository
	ChallengeRepo *challengerepo.Repository
	BetRepo       *betrepo.Repository
	VoteRepo      *voterepo.Repository
	LedgerRepo    *ledgerrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:      userrepo.New(conn),
		ChallengeRepo: challengerepo.New(conn, txManager),
		BetRepo:       betrepo.New(conn),
		VoteRepo:      voterepo.New(conn),
		LedgerRepo:    ledgerrepo.New(conn, txManager),
	}
}
