package main

import "gitodo/cmd"

func main() {
	cmd.Execute()
}
