package main

import "github.com/oshokin/safe-lock/cmd/safe-lock/cmd"

func main() {
	cmd.Execute()
}
