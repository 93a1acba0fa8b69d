// Command escrowd runs the token escrow chain as an ABCI application.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/tokenescrow/cmd/escrowd/app"
	"github.com/tendermint/tendermint/abci/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".escrowd"),
		"directory to store files under, shared with tendermint")
	flagLogLevel = flag.String("log_level", "info", "minimum log level: debug, info, error or none")
)

func helpMessage() {
	fmt.Println("escrowd")
	fmt.Println("        Token escrow ABCI application")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Set app_state in <home>/config/genesis.json: init <owner> [TICKER:DECIMALS ...]")
	fmt.Println("start   Run the abci server: start [-bind addr] [-debug]")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "escrowd")
	allowed, err := log.AllowLevel(*flagLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger = log.NewFilter(logger, allowed)

	cmd, rest := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = initCmd(logger, *flagHome, rest)
	case "start":
		err = startCmd(logger, *flagHome, rest)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("escrowd failed", "cmd", cmd, "err", err)
		os.Exit(1)
	}
}

func initCmd(logger log.Logger, home string, args []string) error {
	options, err := app.GenInitOptions(args)
	if err != nil {
		return err
	}
	genFile := filepath.Join(home, "config", "genesis.json")
	if err := app.AddGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func startCmd(logger log.Logger, home string, args []string) error {
	var (
		bind  string
		debug bool
	)
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	startFlags.StringVar(&bind, "bind", "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&debug, "debug", false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}
	application, err := app.GenerateApp(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", bind, "home", home)
	svr, err := server.NewServer(bind, "socket", application)
	if err != nil {
		return fmt.Errorf("cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return fmt.Errorf("cannot start server: %s", err)
	}

	// Wait until we are told to stop
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("Stopping ABCI app")
	return svr.Stop()
}
