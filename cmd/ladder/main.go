package main

import "github.com/utakatalp/ladder-predictor/internal/cli"

func main() {
	cli.Execute()
}
