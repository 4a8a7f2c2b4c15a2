package main

import "katalog/cmd"

func main() {
	cmd.Execute()
}
