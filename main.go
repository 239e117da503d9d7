package main

import "github.com/fintrackhq/fintrack/cmd"

func main() {
	cmd.Execute()
}
