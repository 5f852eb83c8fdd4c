package main

import "github.com/nikogura/jobmatcher/cmd"

func main() {
	cmd.Execute()
}
