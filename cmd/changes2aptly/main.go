package main

import "changes2aptly/internal/cli"

func main() {
	cli.Execute()
}
