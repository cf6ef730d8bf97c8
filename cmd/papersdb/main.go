// Package main provides the papersdb CLI application.
// papersdb manages a catalog of scientific papers and their PDF files.
package main

import "github.com/gnames/papersdb/cmd"

func main() {
	cmd.Execute()
}
