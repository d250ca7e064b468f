package repo

import (
	"github.com/mlukyanov/quizpoints/internal/pg"
	"github.com/mlukyanov/quizpoints/internal/rdb"
	accountrepo "github.com/mlukyanov/quizpoints/internal/repo/account-repo"
	actionrepo "github.com/mlukyanov/quizpoints/internal/repo/action-repo"
	sessionrepo "github.com/mlukyanov/quizpoints/internal/repo/session-repo"
	txnrepo "github.com/mlukyanov/quizpoints/internal/repo/txn-repo"
)

type Repositories struct {
	Accounts *accountrepo.Repository
	Txns     *txnrepo.Repository
	Actions  *actionrepo.Repository
	Sessions *sessionrepo.Repository
}

func New(conn pg.Database, client rdb.Client) *Repositories {
	return &Repositories{
		Accounts: accountrepo.New(conn),
		Txns:     txnrepo.New(conn),
		Actions:  actionrepo.New(conn),
		Sessions: sessionrepo.New(client),
	}
}
