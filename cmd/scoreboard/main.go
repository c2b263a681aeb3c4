package main

import "github.com/mcoot/mahjong-scoreboard/internal/cli"

func main() {
	cli.Execute()
}
