package main

import "github.com/fatcatfablab/hwbot/cmd"

func main() {
	cmd.Execute()
}
