package main

import "pdf_toolkit/cmd"

func main() {
	cmd.Execute()
}
