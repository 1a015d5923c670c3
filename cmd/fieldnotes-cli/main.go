package main

import "fieldnotes/cmd/fieldnotes-cli/cmd"

func main() {
	cmd.Execute()
}
