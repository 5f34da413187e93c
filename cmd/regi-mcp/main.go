package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	regimcp "github.com/peterkuimelis/regi/internal/mcp"
)

func main() {
	_ = godotenv.Load()

	seed := flag.Int64("seed", envSeed(), "default seed for games started without one")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	// stdout carries the MCP stream.
	logrus.SetOutput(os.Stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	regimcp.SetDefaultSeed(*seed)

	s := server.NewMCPServer("regi", "1.0.0")
	regimcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("REGI_SEED"), 10, 64)
	if err != nil {
		return 1
	}
	return seed
}
