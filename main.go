//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"time"

	"billtopics/internal/db"

	"github.com/pkg/profile"
)

func main() {
	const (
		MSG1 = "imported %d bills from '%s' into '%s'"
		MSG2 = "%d bills loaded: []db.Bill"
		ERR1 = "the corpus is empty; import one first ('-cs bills.csv')"
	)

	ConfigAtLaunch()

	if !Config.QuietStart {
		printversion()
	}

	if Config.Profiling {
		defer profile.Start().Stop()
		// go tool pprof --pdf ./BillTopicServer /path/to/cpu.pprof > profile.pdf
	}

	ModelCfg = modelconfig()

	SQLStore = openstore()
	defer SQLStore.Close()

	if Config.CSVImport != "" {
		ls, ok := SQLStore.(*db.LiteStore)
		if !ok {
			chkf(fmt.Errorf("CSV import needs the sqlite provider; relaunch without -pg"), "main()")
		}
		n, err := ls.ImportCSV(context.Background(), Config.CSVImport)
		chkf(err, "ImportCSV()")
		msg(fmt.Sprintf(MSG1, n, Config.CSVImport, Config.SQLiteFile), MSGMAND)
		return
	}

	start := time.Now()
	bills, err := SQLStore.Corpus(context.Background())
	chkf(err, "Corpus()")
	if len(bills) == 0 {
		chkf(fmt.Errorf(ERR1), "main()")
	}
	TheCorpus = bills
	timetracker("A1", fmt.Sprintf(MSG2, len(TheCorpus)), start, start)

	if Config.BotMode {
		sweepbot()
		return
	}

	StartEchoServer()
}

// openstore - sqlite by default; postgres when the launch supplied credentials
func openstore() db.Store {
	const (
		MSG1 = "using the sqlite corpus snapshot at '%s'"
		MSG2 = "using postgres at %s:%d/%s"
	)

	if Config.SQLProvider == "pgsql" {
		msg(fmt.Sprintf(MSG2, Config.PGLogin.Host, Config.PGLogin.Port, Config.PGLogin.DBName), MSGFYI)
		st, err := db.FillDBConnectionPool(Config.PGLogin, Config.WorkerCount)
		chkf(err, "FillDBConnectionPool()")
		return st
	}

	msg(fmt.Sprintf(MSG1, Config.SQLiteFile), MSGFYI)
	st, err := db.OpenSQLite(Config.SQLiteFile)
	chkf(err, "OpenSQLite()")
	return st
}
