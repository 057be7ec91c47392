package main

import "github.com/tablescout/tablescout/cmd"

func main() {
	cmd.Execute()
}
