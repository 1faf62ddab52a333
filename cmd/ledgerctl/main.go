package main

import (
	"os"

	"github.com/KANAL1234/business-erp-system-sub002/cmd/ledgerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
