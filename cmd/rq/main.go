package main

import "readquest/cmd/rq/root"

func main() {
	root.Execute()
}
