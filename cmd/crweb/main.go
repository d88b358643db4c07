package main

import "github.com/rentweb/crweb/cmd/crweb/command"

func main() {
	command.Execute()
}
