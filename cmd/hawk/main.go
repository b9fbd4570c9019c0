package main

import "hawkins/cmd/hawk/root"

func main() {
	root.Execute()
}
