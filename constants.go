//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import "time"

const (
	MYNAME    = "BillTopicServer"
	SHORTNAME = "BTS"
	VERSION   = "0.4.1"
	PROJURL   = "https://github.com/billtopics/BillTopicServer"

	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/billtopicserver/"
	CONFIGPROLIX   = "bts-prolix-conf.json"
	CONFIGMODEL    = "bts-model-conf.json"

	DEFAULTSQLITEDB     = "bills.db"
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "bts"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "billsDB"
	DEFAULTSQLPROVIDER  = "sqlite"
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8500
	DEFAULTGOLOGLEVEL   = MSGNOTE
	DEFAULTECHOLOGLEVEL = 0

	DEFAULTFOLDS        = 5
	DEFAULTKGRID        = "10,20,30,40,50,60,70,80,90,100"
	DEFAULTFOLDSTRATEGY = "block" // fold membership will correlate with corpus order; "interleave" breaks that
	DEFAULTTOPICCOUNT   = 20
	DEFAULTMINTERMCOUNT = 5
	DEFAULTMINDOCCOUNT  = 2
	DEFAULTMINPAIRCOUNT = 20
	DEFAULTREPORTDIR    = "."

	SWEEPREPORT  = "bts-sweep-%s.html"
	FITREPORT    = "bts-fit-%s.html"
	SEEDEDREPORT = "bts-seeded-%s.html"
	TUNEREPORT   = "bts-heuristics-%s.html"

	TOPTERMSPERTOPIC = 10

	MAXECHOREQPERSECONDPERIP = 60
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 120 * time.Second
	USEGZIP                  = false
	BLACKANDWHITE            = false

	JSONINDENT = "  "
	WRITEPERMS = 0644
	WSPOLLWAIT = 400 * time.Millisecond

	HELPTEXT = `S1command line optionsS0:
   C1-bmC0: bot mode; run the configured sweep + fits unattended, write reports, exit
   C1-bwC0: disable color output in the console
   C1-cfC0: use a file instead of the default configuration ('C3%s/%sC0')
   C1-csC0: import a corpus CSV into the sqlite snapshot and exit ('C3-cs bills.csvC0')
   C1-dgC0: fit with a degenerate seed dictionary anyway
   C1-elC0: set echo server log level (C30-3C0)
   C1-fdC0: set the fold count for the sweep (default: C3%dC0)
   C1-fsC0: fold strategy, 'C3blockC0' or 'C3interleaveC0' (default: 'C3%sC0')
   C1-glC0: set the golang log level (C30-5C0)
   C1-gzC0: enable gzip compression of the server's output
   C1-hC0: print this help information
   C1-kgC0: topic-count grid for the sweep ('C3-kg 10,20,30C0')
   C1-ltC0: use the sqlite corpus snapshot at this path (default: 'C3%sC0')
   C1-lxC0: build the seed dictionary by truncating this lexicon file (degenerate; see C1-dgC0)
   C1-pfC0: write a cpu profile for this run
   C1-pgC0: supply postgres credentials and use postgres instead of sqlite
       C3"{\"Pass\": \"...\", \"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"billsDB\", \"User\": \"bts\"}"C0
   C1-qC0: quiet startup
   C1-rdC0: write HTML reports into this directory (default: '.')
   C1-saC0: server IP address (default: 'C3%sC0')
   C1-sdC0: seed dictionary YAML for the seeded model ('C3-sd seeds.yamlC0')
   C1-spC0: server port (default: C3%dC0)
   C1-tcC0: topic count for a plain fit (default: C3%dC0)
   C1-vC0: print version and exit
   C1-wcC0: worker count for the sweep pool (default: cpu count)
   after launch visit C3http://%s:%dC0
   project: C3%sC0
`
)
