package sieve

import (
	"os"

	"github.com/datazip-inc/sieve/protocol"
	"github.com/datazip-inc/sieve/utils/logger"
	"github.com/datazip-inc/sieve/utils/safego"
)

// Run executes the sieve command line with the shapes registered so far.
func Run() {
	defer safego.Recovery(true)

	err := protocol.CreateRootCommand().Execute()
	if err != nil {
		logger.Fatal(err)
	}

	os.Exit(0)
}
