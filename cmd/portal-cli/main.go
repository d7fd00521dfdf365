package main

import "github.com/nfrund/clubportal/cmd/portal-cli/cmd"

func main() {
	cmd.Execute()
}
