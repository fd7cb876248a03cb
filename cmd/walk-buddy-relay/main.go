package main

import "github.com/oshokin/walk-buddy/cmd/walk-buddy-relay/cmd"

func main() {
	cmd.Execute()
}
