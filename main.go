package main

import "github.com/propshare-labs/propshare/cmd"

func main() {
	cmd.Execute()
}
