package main

import "github.com/dotcommander/gradecast/cmd"

func main() {
	cmd.Execute()
}
