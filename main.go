package main

import "github.com/frahmantamala/coursetrack/cmd"

func main() {
	cmd.Execute()
}
