package main

import "github.com/nfrund/fieldnotes/cmd/fieldnotes-cli/cmd"

func main() {
	cmd.Execute()
}
