// Package main provides the ncbitax CLI application.
// ncbitax manages a local copy of the NCBI taxonomy and answers
// queries against it offline.
package main

import (
	"github.com/gnames/ncbitax/cmd"
)

func main() {
	cmd.Execute()
}
