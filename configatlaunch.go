//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"billtopics/internal/db"
	"billtopics/internal/tm"
)

var (
	Config CurrentConfiguration
)

type CurrentConfiguration struct {
	AllowDegen    bool
	BlackAndWhite bool
	BotMode       bool
	CSVImport     string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	FoldCount     int
	FoldStrategy  string
	Gzip          bool
	HostIP        string
	HostPort      int
	KGrid         string
	LexiconFile   string
	LogLevel      int
	MinDocCount   int
	MinTermCount  int
	PGLogin       db.PostgresLogin
	Profiling     bool
	QuietStart    bool
	ReportDir     string
	SeedDictFile  string
	SQLiteFile    string
	SQLProvider   string // "sqlite" or "pgsql"
	TopicCount    int
	WorkerCount   int
}

// ConfigAtLaunch - read the configuration values from JSON and/or command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\", \"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"billsDB\", \"User\": \"bts\"}"`
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL4 = `Improperly formatted topic-count grid. Using: '%s'`
		FAIL6 = "Could not open '%s'"
	)

	Config = BuildDefaultConfig()

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(CONFIGALTAPTH, uh)
	prolixcfg := fmt.Sprintf("%s/%s", h, CONFIGPROLIX)

	loadedcfg, e := os.Open(prolixcfg)
	if e != nil {
		msg(fmt.Sprintf(FAIL6, prolixcfg), MSGPEEK)
	}

	decoderc := json.NewDecoder(loadedcfg)
	confc := CurrentConfiguration{}
	errc := decoderc.Decode(&confc)
	_ = loadedcfg.Close()

	if errc == nil {
		Config = confc
	} else {
		msg(fmt.Sprintf(FAIL3, prolixcfg), MSGPEEK)
	}

	args := os.Args[1:len(os.Args)]

	for i, a := range args {
		switch a {
		case "-v":
			fmt.Println(VERSION)
			os.Exit(1)
		case "-bm":
			Config.BotMode = true
		case "-bw":
			Config.BlackAndWhite = true
		case "-cf":
			cf := args[i+1]
			loaded, err := os.Open(cf)
			if err != nil {
				msg(fmt.Sprintf(FAIL6, cf), MSGCRIT)
				break
			}
			dec := json.NewDecoder(loaded)
			conf := CurrentConfiguration{}
			if err = dec.Decode(&conf); err == nil {
				Config = conf
			} else {
				msg(fmt.Sprintf(FAIL3, cf), MSGCRIT)
			}
			_ = loaded.Close()
		case "-cs":
			Config.CSVImport = args[i+1]
		case "-dg":
			Config.AllowDegen = true
		case "-el":
			ll, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.EchoLog = ll
		case "-fd":
			fd, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.FoldCount = fd
		case "-fs":
			Config.FoldStrategy = args[i+1]
		case "-gl":
			ll, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.LogLevel = ll
		case "-gz":
			Config.Gzip = true
		case "-h":
			printversion()
			ht := messenger.ColStyle(HELPTEXT)
			fmt.Printf(ht, CONFIGLOCATION, CONFIGPROLIX, DEFAULTFOLDS, DEFAULTFOLDSTRATEGY,
				DEFAULTSQLITEDB, SERVEDFROMHOST, SERVEDFROMPORT, DEFAULTTOPICCOUNT,
				SERVEDFROMHOST, SERVEDFROMPORT, PROJURL)
			os.Exit(0)
		case "-kg":
			if _, ok := parsekgrid(args[i+1]); !ok {
				msg(fmt.Sprintf(FAIL4, DEFAULTKGRID), MSGCRIT)
			} else {
				Config.KGrid = args[i+1]
			}
		case "-lt":
			Config.SQLiteFile = args[i+1]
			Config.SQLProvider = "sqlite"
		case "-lx":
			Config.LexiconFile = args[i+1]
		case "-pf":
			Config.Profiling = true
		case "-pg":
			js := args[i+1]
			var pl db.PostgresLogin
			err := json.Unmarshal([]byte(js), &pl)
			if err != nil {
				msg(FAIL1, MSGMAND)
				msg(FAIL2, MSGCRIT)
			} else {
				Config.PGLogin = pl
				Config.SQLProvider = "pgsql"
			}
		case "-q":
			Config.QuietStart = true
		case "-rd":
			Config.ReportDir = args[i+1]
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sd":
			Config.SeedDictFile = args[i+1]
		case "-sp":
			p, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.HostPort = p
		case "-tc":
			tc, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.TopicCount = tc
		case "-wc":
			wc, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.WorkerCount = wc
		default:
			// do nothing
		}
	}

	messenger.Cfg = Config

	y := ""
	if errc != nil {
		y = " *not*"
	}
	msg(fmt.Sprintf("'%s%s'%s loaded", h, CONFIGPROLIX, y), MSGTMI)
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() CurrentConfiguration {
	var c CurrentConfiguration
	c.BlackAndWhite = BLACKANDWHITE
	c.BotMode = false
	c.EchoLog = DEFAULTECHOLOGLEVEL
	c.FoldCount = DEFAULTFOLDS
	c.FoldStrategy = DEFAULTFOLDSTRATEGY
	c.Gzip = USEGZIP
	c.HostIP = SERVEDFROMHOST
	c.HostPort = SERVEDFROMPORT
	c.KGrid = DEFAULTKGRID
	c.LogLevel = DEFAULTGOLOGLEVEL
	c.MinDocCount = DEFAULTMINDOCCOUNT
	c.MinTermCount = DEFAULTMINTERMCOUNT
	c.QuietStart = false
	c.ReportDir = DEFAULTREPORTDIR
	c.SQLiteFile = DEFAULTSQLITEDB
	c.SQLProvider = DEFAULTSQLPROVIDER
	c.TopicCount = DEFAULTTOPICCOUNT
	c.WorkerCount = runtime.NumCPU()

	pl := db.PostgresLogin{
		Host:   DEFAULTPSQLHOST,
		Port:   DEFAULTPSQLPORT,
		User:   DEFAULTPSQLUSER,
		Pass:   "",
		DBName: DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return c
}

// modelconfig - read the CONFIGMODEL file and return tm.LDAConfig; write the defaults on a first run
func modelconfig() tm.LDAConfig {
	const (
		ERR1 = "modelconfig() cannot find UserHomeDir"
		ERR2 = "modelconfig() failed to parse "
		MSG1 = "wrote default model configuration file "
		MSG2 = "read model configuration from "
	)

	cfg := tm.DefaultLDAConfig()
	cfg.Workers = Config.WorkerCount

	h, e := os.UserHomeDir()
	if e != nil {
		msg(ERR1, MSGCRIT)
		return cfg
	}

	_, yes := os.Stat(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGMODEL)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, JSONINDENT, JSONINDENT)
		chke(err)

		_ = os.MkdirAll(fmt.Sprintf(CONFIGALTAPTH, h), os.FileMode(0700))
		err = os.WriteFile(fmt.Sprintf(CONFIGALTAPTH, h)+CONFIGMODEL, content, WRITEPERMS)
		chke(err)
		msg(MSG1+CONFIGMODEL, MSGPEEK)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGMODEL)
		decoderc := json.NewDecoder(loadedcfg)
		mc := tm.LDAConfig{}
		errc := decoderc.Decode(&mc)
		_ = loadedcfg.Close()
		if errc != nil {
			msg(ERR2+CONFIGMODEL, MSGCRIT)
			mc = cfg
		}
		msg(MSG2+CONFIGMODEL, MSGTMI)
		cfg = mc
	}

	if cfg.Workers == 0 {
		cfg.Workers = Config.WorkerCount
	}
	return cfg
}

func printversion() {
	v := fmt.Sprintf("%s (v.%s)", MYNAME, VERSION)
	msg(v, MSGMAND)
}
