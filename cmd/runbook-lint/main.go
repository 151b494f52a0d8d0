package main

import "github.com/ethpandaops/runbook-lint/cmd/runbook-lint/cmd"

func main() {
	cmd.Execute()
}
