package main

import "github.com/oshokin/walk-buddy/cmd/walk-buddy/cmd"

func main() {
	cmd.Execute()
}
